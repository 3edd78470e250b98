// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

// Package queue holds the ordered list of pending encode jobs.
//
// A job's index is its only identity. Removing a job shifts every later
// job down by one. The queue is owned by a single goroutine and does no
// locking.
package queue

// Queue is an ordered sequence of jobs: insertion order is display order
// and encode order.
type Queue struct {
	jobs []Spec
}

// New returns an empty queue
func New() *Queue {
	return &Queue{}
}

// Len returns the number of queued jobs
func (q *Queue) Len() int {
	return len(q.jobs)
}

// IsEmpty reports whether no jobs are queued
func (q *Queue) IsEmpty() bool {
	return len(q.jobs) == 0
}

// Add appends spec to the end of the queue. Duplicates are allowed.
func (q *Queue) Add(spec Spec) {
	q.jobs = append(q.jobs, spec.clone())
}

// At returns a copy of the job at index i
func (q *Queue) At(i int) (Spec, error) {
	if err := q.check(i); err != nil {
		return Spec{}, err
	}
	return q.jobs[i].clone(), nil
}

// Jobs returns a copy of the queue contents in order
func (q *Queue) Jobs() []Spec {
	out := make([]Spec, len(q.jobs))
	for i, j := range q.jobs {
		out[i] = j.clone()
	}
	return out
}

// RemoveAt deletes the job at index i and shifts later jobs left
func (q *Queue) RemoveAt(i int) error {
	if err := q.check(i); err != nil {
		return err
	}
	copy(q.jobs[i:], q.jobs[i+1:])
	q.jobs[len(q.jobs)-1] = Spec{}
	q.jobs = q.jobs[:len(q.jobs)-1]
	return nil
}

// SetQualityAt changes only the quality of the job at index i
func (q *Queue) SetQualityAt(i int, quality uint8) error {
	if err := q.check(i); err != nil {
		return err
	}
	q.jobs[i].Quality = quality
	return nil
}

// Drain returns the queued jobs in order and leaves the queue empty
func (q *Queue) Drain() []Spec {
	out := q.jobs
	q.jobs = nil
	if out == nil {
		return []Spec{}
	}
	return out
}

func (q *Queue) check(i int) error {
	if i < 0 || i >= len(q.jobs) {
		return &IndexError{Index: i, Len: len(q.jobs)}
	}
	return nil
}
