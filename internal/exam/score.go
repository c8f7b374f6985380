package exam

import (
	"fmt"

	"github.com/stemsi/exstem-engine/internal/model"
)

// Compute reduces questions and their answer slots to a Result.
//
// An unset slot scores zero and is counted as unanswered. When the slices
// differ in length the comparison runs over the shorter one: questions
// without a slot count as unanswered and surplus slots are ignored. Both
// cases, and questions whose correct option is not among their options,
// are reported as warnings rather than errors.
//
// ElapsedSeconds is left at zero; the session fills it in.
func Compute(questions []model.Question, slots []model.AnswerSlot) (model.Result, []IntegrityWarning) {
	var (
		res      model.Result
		warnings []IntegrityWarning
	)

	n := len(questions)
	if len(slots) != n {
		warnings = append(warnings, IntegrityWarning{
			Index:  -1,
			Reason: fmt.Sprintf("answer slot count %d does not match question count %d", len(slots), n),
		})
	}

	for i, q := range questions {
		malformed := !q.HasOption(q.CorrectOptionID)
		if malformed {
			warnings = append(warnings, IntegrityWarning{
				Index:      i,
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("correct option %q is not one of the question's options", q.CorrectOptionID),
			})
		}

		if i >= len(slots) || !slots[i].IsSet() {
			res.UnansweredCount++
			continue
		}
		if !malformed && slots[i].OptionID == q.CorrectOptionID {
			res.CorrectCount++
		} else {
			res.IncorrectCount++
		}
	}

	res.ScorePercent = model.Percent(res.CorrectCount, n)
	return res, warnings
}
