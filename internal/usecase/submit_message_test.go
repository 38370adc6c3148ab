package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

func validMessage(kind string) SubmitMessageInput {
	return SubmitMessageInput{
		Kind:    kind,
		Name:    "João",
		Email:   "joao@example.com",
		Content: "Gostaria de saber mais sobre os uniformes.",
	}
}

func TestSubmitMessage_Contato(t *testing.T) {
	messages := new(MockMessageRepository)
	messages.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitMessageUseCase(messages, nil, nil, nil)
	out, err := uc.Execute(context.Background(), validMessage(entity.MessageKindContact))

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}

func TestSubmitMessage_CandidaturaValidaAVaga(t *testing.T) {
	messages := new(MockMessageRepository)
	jobs := new(MockJobRepository)

	job := &entity.Job{ID: "vaga-1", Title: "Costureira", Description: "CLT", Active: true, CreatedAt: time.Now()}
	jobs.On("FindByID", mock.Anything, "vaga-1").Return(job, nil)

	var created *entity.Message
	messages.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Message)
	}).Return(nil)

	input := validMessage(entity.MessageKindApplication)
	input.JobID = "vaga-1"

	uc := NewSubmitMessageUseCase(messages, jobs, nil, nil)
	_, err := uc.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, created.JobID)
	assert.Equal(t, "vaga-1", *created.JobID)
}

func TestSubmitMessage_CandidaturaVagaInexistente(t *testing.T) {
	messages := new(MockMessageRepository)
	jobs := new(MockJobRepository)
	jobs.On("FindByID", mock.Anything, "vaga-x").Return(nil, entity.ErrJobNotFound)

	input := validMessage(entity.MessageKindApplication)
	input.JobID = "vaga-x"

	uc := NewSubmitMessageUseCase(messages, jobs, nil, nil)
	out, err := uc.Execute(context.Background(), input)

	assert.Nil(t, out)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "JOB_NOT_FOUND", err.(*DomainError).Code)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitMessage_CandidaturaVagaEncerrada(t *testing.T) {
	messages := new(MockMessageRepository)
	jobs := new(MockJobRepository)

	job := &entity.Job{ID: "vaga-2", Title: "Modelista", Description: "CLT", Active: false}
	jobs.On("FindByID", mock.Anything, "vaga-2").Return(job, nil)

	input := validMessage(entity.MessageKindApplication)
	input.JobID = "vaga-2"

	uc := NewSubmitMessageUseCase(messages, jobs, nil, nil)
	out, err := uc.Execute(context.Background(), input)

	assert.Nil(t, out)
	assert.Equal(t, "JOB_CLOSED", err.(*DomainError).Code)
}

func TestSubmitMessage_ConteudoVazio(t *testing.T) {
	input := validMessage(entity.MessageKindSuggestion)
	input.Content = "   "

	uc := NewSubmitMessageUseCase(new(MockMessageRepository), nil, nil, nil)
	out, err := uc.Execute(context.Background(), input)

	assert.Nil(t, out)
	assert.True(t, IsDomainError(err))
}
