//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// inFlight is a submitted command buffer and its submission index.
type inFlight struct {
	cmd   hal.CommandBuffer
	index uint64
}

// submitter encodes and submits one command buffer per operation and frees
// command buffers once the queue reports them complete.
type submitter struct {
	device  hal.Device
	queue   hal.Queue
	pending []inFlight
}

// run records a command buffer with record and submits it. If record
// fails the encoding is discarded and nothing is submitted.
func (s *submitter) run(label string, record func(encoder hal.CommandEncoder) error) error {
	s.reclaim()

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	if err := record(encoder); err != nil {
		encoder.DiscardEncoding()
		return err
	}
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	index, err := s.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		s.device.FreeCommandBuffer(cmd)
		return fmt.Errorf("submit %s: %w", label, err)
	}
	s.pending = append(s.pending, inFlight{cmd: cmd, index: index})
	return nil
}

// reclaim frees command buffers the GPU has finished with.
func (s *submitter) reclaim() {
	if len(s.pending) == 0 {
		return
	}
	done := s.queue.PollCompleted()
	kept := s.pending[:0]
	for _, f := range s.pending {
		if f.index <= done {
			s.device.FreeCommandBuffer(f.cmd)
			continue
		}
		kept = append(kept, f)
	}
	s.pending = kept
}

// wait blocks until the device is idle and frees every command buffer.
func (s *submitter) wait() error {
	if err := s.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	for _, f := range s.pending {
		s.device.FreeCommandBuffer(f.cmd)
	}
	s.pending = s.pending[:0]
	return nil
}
