package response

import (
	"errors"

	"github.com/stemsi/exstem-engine/internal/exam"
	"github.com/stemsi/exstem-engine/internal/repository"
)

// ErrCode is a typed error code enum for consistent error identification
// across the runner and the import tool.
type ErrCode string

const (
	// ─── Session state ─────────────────────────────────────────────────
	ErrNotInProgress   ErrCode = "EXAM_NOT_IN_PROGRESS"
	ErrAnswerLocked    ErrCode = "ANSWER_LOCKED"
	ErrUnanswered      ErrCode = "QUESTION_UNANSWERED"
	ErrAtFirstQuestion ErrCode = "AT_FIRST_QUESTION"
	ErrAtLastQuestion  ErrCode = "AT_LAST_QUESTION"
	ErrInvalidState    ErrCode = "INVALID_STATE"

	// ─── Validation ────────────────────────────────────────────────────
	ErrIndexOutOfRange ErrCode = "INDEX_OUT_OF_RANGE"
	ErrUnknownOption   ErrCode = "UNKNOWN_OPTION"
	ErrValidation      ErrCode = "VALIDATION_ERROR"

	// ─── Question bank ─────────────────────────────────────────────────
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"
	ErrInvalidDuration ErrCode = "INVALID_DURATION"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrDataIntegrity   ErrCode = "DATA_INTEGRITY"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// CodeOf maps an engine or repository error to its code. The most specific
// sentinel wins; unknown errors map to ErrInternal.
func CodeOf(err error) ErrCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, exam.ErrNotInProgress):
		return ErrNotInProgress
	case errors.Is(err, exam.ErrAnswerLocked):
		return ErrAnswerLocked
	case errors.Is(err, exam.ErrUnanswered):
		return ErrUnanswered
	case errors.Is(err, exam.ErrAtFirstQuestion):
		return ErrAtFirstQuestion
	case errors.Is(err, exam.ErrAtLastQuestion):
		return ErrAtLastQuestion
	case errors.Is(err, exam.ErrIndexOutOfRange):
		return ErrIndexOutOfRange
	case errors.Is(err, exam.ErrUnknownOption):
		return ErrUnknownOption
	case errors.Is(err, exam.ErrInvalidState):
		return ErrInvalidState
	case errors.Is(err, exam.ErrEmptyBank):
		return ErrNoQuestions
	case errors.Is(err, exam.ErrInvalidDuration):
		return ErrInvalidDuration
	case errors.Is(err, exam.ErrDataIntegrity):
		return ErrDataIntegrity
	case errors.Is(err, repository.ErrQuestionSetNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidQuestionSet):
		return ErrValidation
	default:
		return ErrInternal
	}
}

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Session state ─────────────────────────────────────────────────
	case ErrNotInProgress:
		return "Ujian tidak sedang berlangsung."
	case ErrAnswerLocked:
		return "Jawaban untuk soal ini sudah dikunci."
	case ErrUnanswered:
		return "Jawab soal ini terlebih dahulu sebelum lanjut."
	case ErrAtFirstQuestion:
		return "Ini adalah soal pertama."
	case ErrAtLastQuestion:
		return "Ini adalah soal terakhir. Gunakan selesai untuk mengakhiri ujian."
	case ErrInvalidState:
		return "Tindakan ini tidak diperbolehkan saat ini."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrIndexOutOfRange:
		return "Nomor soal tidak valid."
	case ErrUnknownOption:
		return "Pilihan jawaban tidak tersedia untuk soal ini."
	case ErrValidation:
		return "Validasi gagal. Silakan periksa berkas soal Anda."

	// ─── Question bank ─────────────────────────────────────────────────
	case ErrNoQuestions:
		return "Bank soal ini tidak memiliki soal yang valid."
	case ErrInvalidDuration:
		return "Durasi ujian harus lebih dari nol."
	case ErrNotFound:
		return "Bank soal tidak ditemukan."
	case ErrDataIntegrity:
		return "Sebagian data soal rusak dan dilewati."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
