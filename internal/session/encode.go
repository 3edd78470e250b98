// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package session

import (
	"context"
	"fmt"

	"github.com/ZSC714725/encodequeue/internal/console"
	"github.com/ZSC714725/encodequeue/internal/ffmpeg"
	"github.com/ZSC714725/encodequeue/internal/queue"
)

// BatchError is returned when a job of a batch fails. The queue keeps all
// of its jobs, including those encoded before the failure.
type BatchError struct {
	Batch string
	Index int
	Total int
	Job   queue.Spec
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %s: job %d/%d (%s): %v", e.Batch, e.Index+1, e.Total, e.Job.Input, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// encode runs every queued job in order and drains the queue once the
// whole batch has succeeded. The first failure stops the batch.
func (s *Session) encode(ctx context.Context) error {
	if s.queue.IsEmpty() {
		s.notice = console.EmptyQueue
		return nil
	}

	if s.lock != nil {
		ok, err := s.lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire batch lock: %w", err)
		}
		if !ok {
			s.notice = "Another batch encode is already running, try again later..."
			s.log.Warn("batch lock held by another process")
			return nil
		}
		defer func() {
			if err := s.lock.Unlock(); err != nil {
				s.log.Warn("release batch lock: %v", err)
			}
		}()
	}

	warning := s.checkDisk()

	id := s.batchID()
	log := s.log.With("batch", id)
	jobs := s.queue.Jobs()
	log.Info("starting batch of %d job(s)", len(jobs))

	for i, job := range jobs {
		args := ffmpeg.Translate(job)

		s.con.Clear()
		s.con.Printf("Encoding %d/%d: %s -> %s\n", i+1, len(jobs), job.Input, job.Output)
		if warning != "" {
			s.con.Println(warning)
		}
		log.Info("job %d/%d start: %s", i+1, len(jobs), ffmpeg.FormatCommand("ffmpeg", args))

		if err := s.enc.Encode(ctx, args); err != nil {
			log.Error("job %d/%d failed: %v", i+1, len(jobs), err)
			return &BatchError{Batch: id, Index: i, Total: len(jobs), Job: job, Err: err}
		}
		log.Info("job %d/%d done: %s", i+1, len(jobs), job.Output)
	}

	done := s.queue.Drain()
	s.notice = fmt.Sprintf("Encoded %d job(s).", len(done))
	log.Info("batch finished")
	return nil
}

// checkDisk returns a warning line when the output directory is low on
// space. A low disk does not stop the batch.
func (s *Session) checkDisk() string {
	if s.disk == nil {
		return ""
	}
	report, err := s.disk.Check(s.outDir)
	if err != nil {
		s.log.Warn("free space check: %v", err)
		return ""
	}
	if !report.Low() {
		return ""
	}
	s.log.Warn("low disk space: %s", report)
	return fmt.Sprintf("Warning: low disk space (%s)", report)
}
