// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package selector

import (
	"fmt"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

// Select narrows cands to exactly one candidate for the requested outcome,
// or returns an *Error describing why it cannot.
func Select(cands []Candidate, outcome feature.Outcome, opts Options) (Result, error) {
	if len(cands) == 0 {
		return Result{}, &Error{Kind: KindMisconfigured, Err: ErrNoCandidates}
	}
	for _, c := range cands {
		if !c.Metadata.IsNeutral() && c.Metadata.Implemented().IsEmpty() {
			return Result{}, &Error{
				Kind: KindMisconfigured,
				Err:  fmt.Errorf("candidate %q of group %q implements no version", c.ID, c.Group),
			}
		}
	}

	awareIdx, neutralIdx := lo.FilterReject(lo.Range(len(cands)), func(i, _ int) bool {
		return !cands[i].Metadata.IsNeutral()
	})
	routeMetadata := aggregate(cands, awareIdx)

	switch outcome.Kind {
	case feature.Invalid, feature.Ambiguous:
		if len(awareIdx) == 0 && !opts.StrictNeutral {
			return pick(cands, neutralIdx, version.Empty, opts)
		}
		kind := KindInvalid
		if outcome.Kind == feature.Ambiguous {
			kind = KindAmbiguous
		}

		return Result{}, &Error{Kind: kind, Requested: outcome.Raw, Metadata: routeMetadata}

	case feature.Unspecified:
		if opts.AssumeDefault {
			if v := opts.defaultVersion(routeMetadata); v.IsRegular() {
				res, err := filter(cands, neutralIdx, awareIdx, v, routeMetadata, opts)
				res.Defaulted = err == nil

				return res, err
			}
		}
		if len(awareIdx) == 0 {
			return pick(cands, neutralIdx, version.Empty, opts)
		}

		return Result{}, &Error{
			Kind:       KindUnspecified,
			Candidates: lo.Map(awareIdx, func(i, _ int) string { return cands[i].ID }),
			Metadata:   routeMetadata,
		}

	case feature.Valid:
		return filter(cands, neutralIdx, awareIdx, outcome.Version, routeMetadata, opts)
	}

	return Result{}, &Error{
		Kind: KindMisconfigured,
		Err:  fmt.Errorf("unknown outcome kind %d", outcome.Kind),
	}
}

func filter(cands []Candidate, neutralIdx, awareIdx []int, v version.Version, routeMetadata metadata.Metadata, opts Options) (Result, error) {
	matched := lo.Filter(awareIdx, func(i, _ int) bool { return cands[i].Metadata.MapsTo(v) })
	matched = append(preferMapped(cands, matched), neutralIdx...)

	if len(matched) == 0 {
		return Result{}, &Error{Kind: KindUnsupported, Version: v, Metadata: routeMetadata}
	}

	return pick(cands, matched, v, opts)
}

// preferMapped drops members answering the version implicitly when another
// member of the same group maps it explicitly.
func preferMapped(cands []Candidate, idx []int) []int {
	explicit := make(map[string]bool)
	for _, i := range idx {
		if _, ok := cands[i].Metadata.Mapped(); ok {
			explicit[cands[i].Group] = true
		}
	}

	return lo.Reject(idx, func(i, _ int) bool {
		_, ok := cands[i].Metadata.Mapped()
		return !ok && explicit[cands[i].Group]
	})
}

// pick applies the host tie-break to the matches.
func pick(cands []Candidate, best []int, v version.Version, opts Options) (Result, error) {
	tie := opts.tieBreaker()
	winner := best[0]
	for _, i := range best[1:] {
		if tie(cands[i], cands[winner]) < 0 {
			winner = i
		}
	}

	var tied []string
	for _, i := range best {
		if i != winner && tie(cands[i], cands[winner]) == 0 {
			tied = append(tied, cands[i].ID)
		}
	}
	if len(tied) > 0 {
		return Result{}, &Error{
			Kind:       KindAmbiguousMatch,
			Version:    v,
			Candidates: append([]string{cands[winner].ID}, tied...),
		}
	}

	c := cands[winner]
	res := Result{Index: winner, Candidate: c, Version: v}
	if c.Metadata.IsNeutral() {
		res.Metadata = metadata.NeutralMetadata()
	} else {
		res.Metadata = aggregate(cands, lo.Filter(lo.Range(len(cands)), func(i, _ int) bool {
			return cands[i].Group == c.Group && !cands[i].Metadata.IsNeutral()
		}))
	}

	return res, nil
}

func aggregate(cands []Candidate, idx []int) metadata.Metadata {
	return metadata.Aggregate(lo.Map(idx, func(i, _ int) metadata.Metadata { return cands[i].Metadata })...)
}
