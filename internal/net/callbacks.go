package net

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Callback observes the training loop.
type Callback interface {
	OnTrainBegin(n *Network)
	OnEpochEnd(epoch int, stats EpochStats, n *Network)
	OnTrainEnd(n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network) {}

func (c BaseCallback) OnEpochEnd(epoch int, stats EpochStats, n *Network) {}

func (c BaseCallback) OnTrainEnd(n *Network) {}

// Logger prints training progress to stdout every Interval epochs.
type Logger struct {
	BaseCallback
	Interval int
}

func (c Logger) OnEpochEnd(epoch int, stats EpochStats, n *Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Printf("  epoch %3d: loss=%.6f val_loss=%.6f accuracy=%.4f\n",
			epoch, stats.Loss, stats.ValLoss, stats.Accuracy)
	}
}

// CSVLogger writes the per-epoch training history to a CSV file.
type CSVLogger struct {
	BaseCallback
	Filename string

	file   *os.File
	writer *csv.Writer
	start  time.Time
}

// NewCSVLogger creates a CSVLogger writing to filename.
func NewCSVLogger(filename string) *CSVLogger {
	return &CSVLogger{Filename: filename}
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	file, err := os.Create(c.Filename)
	if err != nil {
		fmt.Printf("CSVLogger: failed to open file %s: %v\n", c.Filename, err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	c.writer.Write([]string{"epoch", "loss", "val_loss", "accuracy", "time_seconds"})
	c.writer.Flush()
}

func (c *CSVLogger) OnEpochEnd(epoch int, stats EpochStats, n *Network) {
	if c.writer == nil {
		return
	}

	record := []string{
		strconv.Itoa(epoch),
		fmt.Sprintf("%.6f", stats.Loss),
		fmt.Sprintf("%.6f", stats.ValLoss),
		fmt.Sprintf("%.4f", stats.Accuracy),
		fmt.Sprintf("%.2f", time.Since(c.start).Seconds()),
	}
	if err := c.writer.Write(record); err != nil {
		fmt.Printf("CSVLogger: failed to write record: %v\n", err)
	}
	c.writer.Flush()
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.file != nil {
		c.writer.Flush()
		c.file.Close()
		c.file = nil
		c.writer = nil
	}
}
