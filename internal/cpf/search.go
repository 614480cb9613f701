package cpf

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	// minParallelSpace is the smallest candidate count worth splitting
	// across workers.
	minParallelSpace = 10_000
	// chunkSize is the number of candidates one worker scans before its
	// matches are flushed. It bounds what a parallel search holds in memory.
	chunkSize = 1 << 14
	// pollMask sets how often a scan checks for cancellation (every 65536
	// candidates).
	pollMask = 1<<16 - 1
)

// search enumerates fillings of the body holes of one CPF. Candidate n,
// written in base 10 with width len(holes), assigns its digits to the holes
// in order, so ascending n gives ascending hole digits.
type search struct {
	template [BodyLength]byte // digit values; holes hold 0
	holes    []int
	given    [2]byte
}

func newSearch(c Canonical, holes []int) *search {
	s := &search{holes: holes, given: c.Verifiers()}
	for i := 0; i < BodyLength; i++ {
		if !IsPlaceholder(c[i]) {
			s.template[i] = c[i] - '0'
		}
	}
	return s
}

// space is the number of candidates, 10^len(holes).
func (s *search) space() int {
	n := 1
	for range s.holes {
		n *= 10
	}
	return n
}

// run searches the full candidate space, passing each match to emit in
// ascending order, and returns the number of matches.
//
// With more than one worker the space is cut into chunks of chunkSize. Each
// round scans up to workers chunks concurrently, then flushes them in range
// order before the next round starts, so at most workers chunks of matches
// are buffered at any time.
func (s *search) run(ctx context.Context, workers int, emit func(string) error) (int, error) {
	total := s.space()
	if workers < 2 || total < minParallelSpace {
		return s.scan(ctx, 0, total, emit)
	}

	chunks := (total + chunkSize - 1) / chunkSize
	workers = min(workers, chunks)
	parts := make([][]string, workers)

	found := 0
	for first := 0; first < chunks; first += workers {
		round := min(workers, chunks-first)
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < round; w++ {
			w := w
			lo := (first + w) * chunkSize
			hi := min(lo+chunkSize, total)
			g.Go(func() error {
				parts[w] = parts[w][:0]
				_, err := s.scan(gctx, lo, hi, func(line string) error {
					parts[w] = append(parts[w], line)
					return nil
				})
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return found, err
		}
		for _, p := range parts[:round] {
			for _, line := range p {
				if err := emit(line); err != nil {
					return found, err
				}
				found++
			}
		}
	}
	return found, nil
}

// scan evaluates candidates in [lo, hi), passing formatted matches to emit.
func (s *search) scan(ctx context.Context, lo, hi int, emit func(string) error) (int, error) {
	body := s.template
	found := 0
	for n := lo; n < hi; n++ {
		if (n-lo)&pollMask == 0 {
			if err := ctx.Err(); err != nil {
				return found, err
			}
		}
		m := n
		for j := len(s.holes) - 1; j >= 0; j-- {
			body[s.holes[j]] = byte(m % 10)
			m /= 10
		}
		if repeatedDigits(&body) {
			continue
		}
		v := checkDigits(&body)
		if !Matches(s.given, v) {
			continue
		}
		if err := emit(formatDigits(&body, v)); err != nil {
			return found, err
		}
		found++
	}
	return found, nil
}

func repeatedDigits(d *[BodyLength]byte) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}

func formatDigits(d *[BodyLength]byte, v CheckDigitPair) string {
	var body [BodyLength]byte
	for i, x := range d {
		body[i] = '0' + x
	}
	return Format(string(body[:]), v)
}
