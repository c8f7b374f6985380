package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/exstem-engine/internal/model"
)

// tagOptionMember flags a correct option that is not among the question's options.
const tagOptionMember = "option_member"

var (
	once     sync.Once
	validate *govalidator.Validate
	// trans is the singleton English translator for validation errors.
	trans ut.Translator
)

// Setup builds the validator with English translations and the question rules.
// It is safe to call more than once; only the first call does any work.
func Setup() {
	once.Do(func() {
		v := govalidator.New(govalidator.WithRequiredStructEnabled())

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		v.RegisterStructValidation(questionStructLevel, model.Question{})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterTranslation(tagOptionMember, trans,
			func(t ut.Translator) error {
				return t.Add(tagOptionMember, "{0} must reference one of the question's options", true)
			},
			func(t ut.Translator, fe govalidator.FieldError) string {
				msg, _ := t.T(tagOptionMember, fe.Field())
				return msg
			},
		)

		validate = v
	})
}

func questionStructLevel(sl govalidator.StructLevel) {
	q := sl.Current().Interface().(model.Question)
	if q.CorrectOptionID != "" && !q.HasOption(q.CorrectOptionID) {
		sl.ReportError(q.CorrectOptionID, "correct_option_id", "CorrectOptionID", tagOptionMember, "")
	}
}

// ValidateQuestion checks a single question record. It returns nil when the
// record is well formed, otherwise a map of field path to message.
func ValidateQuestion(q model.Question) map[string]string {
	Setup()
	if err := validate.Struct(q); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// TranslateErrors takes a validation error and returns a map of
// field path → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// fieldPath drops the root struct name so nested option errors stay distinct,
// e.g. "options[1].text" instead of "text".
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
