package topic

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileSource serves conversation starters from a plain-text file, one topic
// per line. Topics are dealt shuffle-bag style: every topic comes up exactly
// once before any repeats, and the bag reshuffles when it empties.
type FileSource struct {
	topics []string
	queue  []string
	mutex  sync.Mutex
	rng    *rand.Rand
}

func NewFileSource(path string, rng *rand.Rand) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topics file: %w", err)
	}
	defer f.Close()

	var topics []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			topics = append(topics, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topics file: %w", err)
	}

	if len(topics) == 0 {
		return nil, fmt.Errorf("topics file %s contains no topics", path)
	}

	log.Info().Int("count", len(topics)).Str("path", path).Msg("loaded topics")

	s := &FileSource{topics: topics, rng: rng}
	s.shuffle()

	return s, nil
}

// Topic deals the next topic from the bag, reshuffling when the bag is
// empty.
func (s *FileSource) Topic() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.queue) == 0 {
		s.shuffle()
	}

	topic := s.queue[len(s.queue)-1]
	s.queue = s.queue[:len(s.queue)-1]

	return topic
}

func (s *FileSource) shuffle() {
	s.queue = make([]string, len(s.topics))
	copy(s.queue, s.topics)
	s.rng.Shuffle(len(s.queue), func(i, j int) {
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	})
}
