package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/stemsi/exstem-engine/internal/exam"
	"github.com/stemsi/exstem-engine/internal/model"
	"github.com/stemsi/exstem-engine/internal/response"
)

// Remaining-time marks announced while the exam runs.
var timeWarnings = map[int]bool{300: true, 60: true, 30: true, 10: true}

// runner drives one session from line-oriented input. Session callbacks only
// push onto channels; all output is written from the run loop.
type runner struct {
	session *exam.Session
	in      io.Reader
	out     io.Writer
	prompt  bool

	ticks chan int
	done  chan model.Result
}

func newRunner(in io.Reader, out io.Writer, prompt bool) *runner {
	return &runner{
		in:     in,
		out:    out,
		prompt: prompt,
		ticks:  make(chan int, 1),
		done:   make(chan model.Result, 1),
	}
}

// hooks returns the session options that connect a session to this runner.
func (r *runner) hooks() []exam.SessionOption {
	return []exam.SessionOption{
		exam.WithTickHook(func(remaining int) {
			select {
			case r.ticks <- remaining:
			default:
			}
		}),
		exam.WithCompleteHook(func(res model.Result) {
			r.done <- res
		}),
	}
}

// run starts the session and processes commands until it completes. Input
// EOF or ctx cancellation abandons the session.
func (r *runner) run(ctx context.Context, s *exam.Session) (model.Result, error) {
	r.session = s

	stop := make(chan struct{})
	defer close(stop)
	lines := readLines(r.in, stop)

	if err := s.Start(); err != nil {
		return model.Result{}, err
	}
	r.printHelp()
	r.render()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			ctx = context.Background()

		case res := <-r.done:
			r.printResult(res)
			return res, nil

		case left := <-r.ticks:
			if timeWarnings[left] {
				fmt.Fprintf(r.out, "\n⏰ Sisa waktu %s\n", model.FormatClock(left))
				r.showPrompt()
			}

		case line, ok := <-lines:
			if !ok {
				lines = nil
				s.Close()
				continue
			}
			r.handle(line)
		}
	}
}

func readLines(in io.Reader, stop <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
	}()
	return lines
}

func (r *runner) handle(line string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	s := r.session

	var err error
	switch strings.ToLower(cmd) {
	case "":
		r.showPrompt()
		return
	case "a":
		err = r.answer(strings.TrimSpace(arg))
	case "n":
		if err = s.Advance(); err == nil {
			r.render()
			return
		}
	case "p":
		if err = s.Retreat(); err == nil {
			r.render()
			return
		}
	case "f":
		_, err = s.Finish()
		if err == nil {
			return
		}
	case "q":
		s.Close()
		return
	case "s":
		r.render()
		return
	case "h", "?":
		r.printHelp()
		r.showPrompt()
		return
	default:
		fmt.Fprintf(r.out, "Perintah tidak dikenal: %q\n", cmd)
		r.showPrompt()
		return
	}

	if err != nil {
		fmt.Fprintf(r.out, "✗ %s\n", response.GetMessage(response.CodeOf(err)))
	}
	r.showPrompt()
}

func (r *runner) answer(input string) error {
	s := r.session
	idx := s.CurrentIndex()
	q := s.CurrentQuestion()

	reveal, err := s.SelectAnswer(idx, resolveOption(q, input))
	if err != nil {
		return err
	}

	if reveal.Correct {
		fmt.Fprintln(r.out, "✓ Benar!")
	} else {
		fmt.Fprintf(r.out, "✗ Salah. Jawaban benar: %s\n", optionLabel(q, reveal.CorrectOptionID))
	}
	if reveal.Explanation != "" {
		fmt.Fprintf(r.out, "  %s\n", reveal.Explanation)
	}
	return nil
}

// resolveOption accepts an option ID or its display label, case-insensitively.
func resolveOption(q model.Question, input string) string {
	for _, o := range q.Options {
		if strings.EqualFold(o.ID, input) || strings.EqualFold(o.Label, input) {
			return o.ID
		}
	}
	return input
}

func optionLabel(q model.Question, id string) string {
	for _, o := range q.Options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

func (r *runner) render() {
	s := r.session
	snap := s.Snapshot()
	q := s.CurrentQuestion()

	fmt.Fprintf(r.out, "\nSoal %d/%d  [%s]", snap.CurrentIndex+1, snap.QuestionCount, model.FormatClock(snap.RemainingSeconds))
	if q.Difficulty != "" {
		fmt.Fprintf(r.out, "  (%s)", q.Difficulty)
	}
	fmt.Fprintf(r.out, "\n%s\n", q.Prompt)
	for _, o := range q.Options {
		fmt.Fprintf(r.out, "  %s. %s\n", o.Label, o.Text)
	}

	if chosen, ok := s.Answer(snap.CurrentIndex); ok {
		fmt.Fprintf(r.out, "Jawaban Anda: %s (terkunci)\n", optionLabel(q, chosen))
		if s.IsRevealed(snap.CurrentIndex) && q.Explanation != "" {
			fmt.Fprintf(r.out, "  %s\n", q.Explanation)
		}
	}
	r.showPrompt()
}

func (r *runner) printHelp() {
	fmt.Fprintln(r.out, "Perintah: a <pilihan> jawab | n berikutnya | p sebelumnya | s tampilkan | f selesai | q keluar")
}

func (r *runner) printResult(res model.Result) {
	snap := r.session.Snapshot()
	reason := ""
	if snap.Reason != nil {
		reason = reasonText(*snap.Reason)
	}

	fmt.Fprintf(r.out, "\n=== %s ===\n", reason)
	fmt.Fprintf(r.out, "Benar: %d  Salah: %d  Kosong: %d\n", res.CorrectCount, res.IncorrectCount, res.UnansweredCount)
	fmt.Fprintf(r.out, "Skor: %d%%  Waktu: %s\n", res.ScorePercent, model.FormatClock(res.ElapsedSeconds))
}

func reasonText(reason model.CompletionReason) string {
	switch reason {
	case model.CompletionExpired:
		return "Waktu habis"
	case model.CompletionAbandoned:
		return "Ujian dihentikan"
	default:
		return "Ujian selesai"
	}
}

func (r *runner) showPrompt() {
	if r.prompt {
		fmt.Fprint(r.out, "> ")
	}
}
