package server

import "github.com/rs/zerolog"

// taskQueue serializes work against one engine client: a single worker
// goroutine drains the channel, so searches enqueued by concurrent HTTP
// handlers never interleave their UCI commands. A panicking task is logged
// and the next task proceeds.
type taskQueue struct {
	tasks chan func()
	log   zerolog.Logger
}

func newTaskQueue(log zerolog.Logger) *taskQueue {
	var q = &taskQueue{
		tasks: make(chan func(), 64),
		log:   log,
	}
	go q.run()
	return q
}

func (q *taskQueue) run() {
	for task := range q.tasks {
		q.runOne(task)
	}
}

func (q *taskQueue) runOne(task func()) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error().Interface("panic", r).Msg("engine task panicked")
		}
	}()
	task()
}

// Do enqueues task and blocks until it has run behind all prior tasks.
func (q *taskQueue) Do(task func()) {
	var done = make(chan struct{})
	q.tasks <- func() {
		defer close(done)
		task()
	}
	<-done
}
