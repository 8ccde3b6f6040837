package worker

import (
	"fmt"
	"runtime"

	"github.com/BrugadaSyndrome/bslogger"
)

type Settings struct {
	logger bslogger.Logger

	QueueSize int
	Workers   int
}

func (s *Settings) String() string {
	output := "\nWorker pool settings\n"
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	output += fmt.Sprintf("Queue Size: %d\n", s.QueueSize)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil)

	if s.Workers <= 0 {
		s.Workers = runtime.GOMAXPROCS(0)
	}
	// A few jobs per worker keeps every goroutine busy while the submitter catches up
	if s.QueueSize <= 0 {
		s.QueueSize = 4 * s.Workers
	}

	s.logger.Debug(s.String())
	return nil
}
