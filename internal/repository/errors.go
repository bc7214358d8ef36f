package repository

import "errors"

// ErrInvalidOrder is returned by QuestionRepository.Reorder when the supplied
// ids are not exactly a permutation of the survey's questions.
var ErrInvalidOrder = errors.New("question ids do not match the survey's questions")

// ErrDuplicateResponse is returned by ResponseRepository.CreateOnceWithAnswers
// when the respondent already has a response to the survey.
var ErrDuplicateResponse = errors.New("respondent has already answered this survey")
