package parse

// Parser is a pure function from an Input to a Result. All combinators in
// this package build larger Parsers out of smaller ones; none perform I/O or
// retain state between calls.
type Parser[I Input, T any] func(in I) Result[I, T]

// Pure always succeeds with v, without consuming input.
func Pure[I Input, T any](v T) Parser[I, T] {
	return func(in I) Result[I, T] {
		return Ok[I, T](v, in, false)
	}
}

// Fail0 always fails with msg at the input's current position, without
// consuming input.
func Fail0[I Input, T any](msg string) Parser[I, T] {
	return func(in I) Result[I, T] {
		return Fail[I, T](NewError(in.Pos(), false, msg))
	}
}

// Map transforms a successful output with f; failures pass through
// unchanged.
func Map[I Input, A, B any](p Parser[I, A], f func(A) B) Parser[I, B] {
	return func(in I) Result[I, B] {
		r := p(in)
		if !r.IsOk() {
			return Fail[I, B](r.Err())
		}
		s := r.Unwrap()
		return OkWith[I, B](Success[I, B]{
			Output:          f(s.Output),
			Rest:            s.Rest,
			Consumed:        s.Consumed,
			BestAlternative: s.BestAlternative,
		})
	}
}

// Bind feeds a successful output into f, which produces the next parser to
// run against the remaining input. Consumed-ness and bestAlternative
// propagate using the same rule as Seq (furthest-error-wins).
func Bind[I Input, A, B any](p Parser[I, A], f func(A) Parser[I, B]) Parser[I, B] {
	return func(in I) Result[I, B] {
		r := p(in)
		if !r.IsOk() {
			return Fail[I, B](r.Err())
		}
		s := r.Unwrap()
		r2 := f(s.Output)(s.Rest)
		return mergeSeq[I, B](s.Consumed, s.BestAlternative, r2)
	}
}

// mergeSeq applies the Seq error-merging rule (spec.md §4.1): if the second
// step fails, report the farther of its error and the first step's
// bestAlternative (unioning expectations on a tie), marked consumed if either
// step consumed. A success counts as consumed only if both steps consumed.
func mergeSeq[I Input, T any](firstConsumed bool, firstAlt *Error, r2 Result[I, T]) Result[I, T] {
	if !r2.IsOk() {
		e := r2.Err()
		if firstAlt != nil {
			e = furthest(*firstAlt, e)
		}
		e.Consumed = e.Consumed || firstConsumed
		return Fail[I, T](e)
	}
	s2 := r2.Unwrap()
	out := Success[I, T]{
		Output:   s2.Output,
		Rest:     s2.Rest,
		Consumed: firstConsumed && s2.Consumed,
	}
	switch {
	case firstAlt != nil && s2.BestAlternative != nil:
		merged := furthest(*firstAlt, *s2.BestAlternative)
		out.BestAlternative = &merged
	case firstAlt != nil:
		out.BestAlternative = firstAlt
	default:
		out.BestAlternative = s2.BestAlternative
	}
	return OkWith[I, T](out)
}

// Seq runs p then q, combining their outputs with combine. This is the
// fundamental sequencing combinator; Bind is implemented in terms of the same
// merge rule so both share identical diagnostics.
func Seq[I Input, A, B, C any](p Parser[I, A], q Parser[I, B], combine func(A, B) C) Parser[I, C] {
	return Bind[I, A, C](p, func(a A) Parser[I, C] {
		return Map[I, B, C](q, func(b B) C { return combine(a, b) })
	})
}

// SkipLeft runs p then q, keeping only q's output.
func SkipLeft[I Input, A, B any](p Parser[I, A], q Parser[I, B]) Parser[I, B] {
	return Seq[I, A, B, B](p, q, func(_ A, b B) B { return b })
}

// SkipRight runs p then q, keeping only p's output.
func SkipRight[I Input, A, B any](p Parser[I, A], q Parser[I, B]) Parser[I, A] {
	return Seq[I, A, B, A](p, q, func(a A, _ B) A { return a })
}

// Either tries each parser in order. A branch that fails without consuming
// input allows the next branch to run; a branch that fails after consuming
// input commits to that failure (wrap in Try to restore backtracking). The
// running best-so-far error is tracked across branches per spec.md §4.1:
// adopt the first error seen; replace it with a later one that consumed
// input and reaches strictly farther; union expectations on a tie; otherwise
// discard. A success that occurs while a consuming, farther-reaching error is
// outstanding carries that error forward as BestAlternative.
func Either[I Input, T any](ps ...Parser[I, T]) Parser[I, T] {
	return func(in I) Result[I, T] {
		var best *Error
		for _, p := range ps {
			r := p(in)
			if r.IsOk() {
				s := r.Unwrap()
				if best != nil && best.Consumed && best.Pos.LaterThan(restPos(s.Rest)) {
					alt := *best
					s.BestAlternative = &alt
				}
				return OkWith[I, T](s)
			}
			e := r.Err()
			switch {
			case best == nil:
				b := e
				best = &b
			case e.Consumed && e.Pos.LaterThan(best.Pos):
				b := e
				best = &b
			case !e.Pos.LaterThan(best.Pos) && !best.Pos.LaterThan(e.Pos):
				merged := furthest(*best, e)
				best = &merged
			}
			if e.Consumed {
				// The branch committed: later branches are not tried.
				committed := *best
				committed.Consumed = true
				return Fail[I, T](committed)
			}
		}
		if best == nil {
			return Fail[I, T](NewError(in.Pos(), false, "no alternatives"))
		}
		return Fail[I, T](*best)
	}
}

func restPos(in Input) Position {
	return in.Pos()
}

// Try converts any failure from p into an uncommitted one, restoring
// backtracking at the point Try was applied. A success from p is also
// reported as not-consumed, so an enclosing Either treats the whole attempt
// as free to abandon.
func Try[I Input, T any](p Parser[I, T]) Parser[I, T] {
	return func(in I) Result[I, T] {
		r := p(in)
		if r.IsOk() {
			s := r.Unwrap()
			s.Consumed = false
			return OkWith[I, T](s)
		}
		e := r.Err()
		e.Consumed = false
		return Fail[I, T](e)
	}
}

// Optional runs p; on an uncommitted failure it yields def without consuming
// input. A committed failure (consumed input) propagates unchanged.
func Optional[I Input, T any](def T, p Parser[I, T]) Parser[I, T] {
	return func(in I) Result[I, T] {
		r := p(in)
		if r.IsOk() {
			return r
		}
		e := r.Err()
		if e.Consumed {
			return Fail[I, T](e)
		}
		return Ok[I, T](def, in, false)
	}
}

// Many folds zero or more applications of p, stopping at the first
// uncommitted failure or when the input stops advancing. A committed failure
// mid-stream propagates.
//
// Loop termination is judged by structural position progress (Rest.Pos()),
// not by p's reported Consumed flag: seq's consumed=both-consumed rule
// (spec.md §4.1) means a p built from seq/bind/optional can legitimately
// report consumed=false after advancing the input several tokens (e.g. an
// expression statement whose optional trailing assignment-operator clause
// didn't match). Keying the loop off Consumed would wrongly cut the fold
// short after a single element in that case.
func Many[I Input, A, B any](p Parser[I, A], seed B, fold func(B, A) B) Parser[I, B] {
	return func(in I) Result[I, B] {
		acc := seed
		consumedAny := false
		cur := in
		for {
			r := p(cur)
			if !r.IsOk() {
				e := r.Err()
				if e.Consumed {
					return Fail[I, B](e)
				}
				break
			}
			s := r.Unwrap()
			advanced := s.Rest.Pos().LaterThan(cur.Pos())
			acc = fold(acc, s.Output)
			if s.Consumed {
				consumedAny = true
			}
			if !advanced {
				// No structural progress: stop to avoid looping forever on
				// a parser that can succeed without advancing the input.
				break
			}
			cur = s.Rest
		}
		return Ok[I, B](acc, cur, consumedAny)
	}
}

// Many1 requires at least one successful application of p.
func Many1[I Input, A, B any](p Parser[I, A], seed B, fold func(B, A) B) Parser[I, B] {
	return Bind[I, A, B](p, func(first A) Parser[I, B] {
		return Many[I, A, B](p, fold(seed, first), fold)
	})
}

// Separated parses zero or more p separated by sep, returning the list of
// p's outputs.
func Separated[I Input, A, S any](p Parser[I, A], sep Parser[I, S]) Parser[I, []A] {
	rest := Many[I, A, []A](
		SkipLeft[I, S, A](sep, p),
		nil,
		func(acc []A, x A) []A { return append(acc, x) },
	)
	return Optional[I, []A](nil, Bind[I, A, []A](p, func(first A) Parser[I, []A] {
		return Map[I, []A, []A](rest, func(more []A) []A {
			return append([]A{first}, more...)
		})
	}))
}

// Enclosed discards the results of l and r, keeping only p's output.
func Enclosed[I Input, L, A, R any](l Parser[I, L], p Parser[I, A], r Parser[I, R]) Parser[I, A] {
	return SkipLeft[I, L, A](l, SkipRight[I, A, R](p, r))
}

// Tagged attaches a human-readable production name to p's failures: an
// uncommitted failure has its expectation set replaced with {name}; a
// committed failure has its Context set to name if none is already present.
// This is how grammar-level names ("expression", "if statement", ...)
// replace raw token-kind expectations in error messages (spec.md §4.3).
func Tagged[I Input, T any](p Parser[I, T], name string) Parser[I, T] {
	return func(in I) Result[I, T] {
		r := p(in)
		if r.IsOk() {
			return r
		}
		e := r.Err()
		if !e.Consumed {
			e.Expectations = map[string]struct{}{name: {}}
		} else if e.Context == "" {
			e.Context = name
		}
		return Fail[I, T](e)
	}
}

// Positional pairs p's output with the input position at which it started.
type Positioned[T any] struct {
	Pos    Position
	Output T
}

func Positional[I Input, T any](p Parser[I, T]) Parser[I, Positioned[T]] {
	return func(in I) Result[I, Positioned[T]] {
		start := in.Pos()
		r := p(in)
		if !r.IsOk() {
			return Fail[I, Positioned[T]](r.Err())
		}
		s := r.Unwrap()
		return OkWith[I, Positioned[T]](Success[I, Positioned[T]]{
			Output:          Positioned[T]{Pos: start, Output: s.Output},
			Rest:            s.Rest,
			Consumed:        s.Consumed,
			BestAlternative: s.BestAlternative,
		})
	}
}
