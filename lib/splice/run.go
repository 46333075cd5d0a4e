//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package splice

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/fatih/set.v0"
)

const packetLength = 256

// Stats counts junctions by class and outcome.
type Stats struct {
	Junctions      uint64            `json:"junctions"`
	Kinds          map[string]uint64 `json:"kinds"`
	Annotated      uint64            `json:"annotated"`
	Miss           uint64            `json:"miss"`
	CrossGene      uint64            `json:"cross_gene"`
	SingleDisabled uint64            `json:"single_disabled"`
	SingleOutside  uint64            `json:"single_outside"`
	Genes          int               `json:"genes"`

	genes set.Interface
}

func NewStats() *Stats {
	s := &Stats{Kinds: make(map[string]uint64, len(Kinds)), genes: set.New(set.NonThreadSafe)}
	for _, k := range Kinds {
		s.Kinds[k.String()] = 0
	}
	return s
}

func (s *Stats) add(ann Annotation, kind Kind, outcome Outcome) {
	s.Junctions++
	s.Kinds[kind.String()]++
	switch outcome {
	case OutcomeAnnotated:
		s.Annotated++
		s.genes.Add(ann.Gene)
		s.Genes = s.genes.Size()
	case OutcomeMiss:
		s.Miss++
	case OutcomeCrossGene:
		s.CrossGene++
	case OutcomeSingleDisabled:
		s.SingleDisabled++
	case OutcomeSingleOutside:
		s.SingleOutside++
	}
}

type result struct {
	ann     Annotation
	kind    Kind
	outcome Outcome
}

type packet struct {
	ID        int
	FirstLine int
	Lines     []string
	Results   []result
}

// Run reads junction lines from r, annotates them with nWorker workers and
// writes annotations to w in input order. A malformed line stops the run.
func Run(ctx context.Context, r io.Reader, w io.Writer, a *Annotator, nWorker int) (*Stats, error) {
	if nWorker < 1 {
		nWorker = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	chIn := make(chan *packet, nWorker*2)
	chOut := make(chan *packet, nWorker*2)

	// Reader
	g.Go(func() error {
		defer close(chIn)
		scanner := bufio.NewScanner(r)
		var nLine, nPacket int
		p := &packet{FirstLine: 1}
		send := func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chIn <- p:
			}
			nPacket++
			p = &packet{ID: nPacket, FirstLine: nLine + 1}
			return nil
		}
		for scanner.Scan() {
			nLine++
			p.Lines = append(p.Lines, scanner.Text())
			if len(p.Lines) == packetLength {
				if err := send(); err != nil {
					return err
				}
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		if len(p.Lines) > 0 {
			return send()
		}
		return nil
	})

	// Workers
	g.Go(func() error {
		defer close(chOut)
		wg, wgctx := errgroup.WithContext(gctx)
		for iw := 0; iw < nWorker; iw++ {
			wg.Go(func() error {
				for p := range chIn {
					p.Results = make([]result, 0, len(p.Lines))
					for i, line := range p.Lines {
						if line == "" {
							continue
						}
						j, err := ParseJunction(line)
						if err != nil {
							return errors.Wrapf(err, "line %d", p.FirstLine+i)
						}
						ann, kind, outcome := a.Annotate(j)
						p.Results = append(p.Results, result{ann: ann, kind: kind, outcome: outcome})
					}
					select {
					case <-wgctx.Done():
						return wgctx.Err()
					case chOut <- p:
					}
				}
				return nil
			})
		}
		return wg.Wait()
	})

	// Combine packets in input order
	stats := NewStats()
	pending := make(map[int]*packet)
	next := 0
	var writeErr error
	for p := range chOut {
		pending[p.ID] = p
		for {
			q, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			for _, res := range q.Results {
				stats.add(res.ann, res.kind, res.outcome)
				if res.outcome != OutcomeAnnotated || writeErr != nil {
					continue
				}
				if _, err := fmt.Fprintln(w, res.ann.String()); err != nil {
					writeErr = err
					cancel()
				}
			}
		}
	}
	if err := g.Wait(); err != nil && writeErr == nil {
		return stats, err
	}
	return stats, writeErr
}
