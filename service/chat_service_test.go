package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-explorer/apperrors"
	"review-explorer/models"
)

func TestChatService_Greeting(t *testing.T) {
	msg := NewChatService().Greeting(models.Place{Name: "Coffee Corner"})

	assert.Equal(t, "Hi! I'm your AI assistant. I can help you learn more about Coffee Corner based on customer reviews. What would you like to know?", msg.Text)
	assert.False(t, msg.IsUser)
	assert.NotEmpty(t, msg.ID)
}

func TestAnswer_KeywordGroups(t *testing.T) {
	tests := []struct {
		question string
		prefix   string
	}{
		{"How is the FOOD?", "Based on reviews, customers frequently praise"},
		{"Are the waiters nice?", "Reviews indicate that the staff"},
		{"is it expensive", "The restaurant is considered moderately"},
		{"romantic enough?", "The atmosphere is consistently praised"},
		{"Where can I find parking", "The location is convenient"},
		{"do I need a reservation", "Based on reviews, reservations"},
		{"Should I go?", "Based on the overall sentiment"},
		{"Do they have wifi", "That's an interesting question!"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Contains(t, Answer(tt.question), tt.prefix)
		})
	}
}

func TestAnswer_FirstMatchingGroupWins(t *testing.T) {
	// "menu" (food) is checked before "staff" (service).
	assert.Equal(t, Answer("menu"), Answer("does the staff explain the menu"))
}

func TestChatService_Reply(t *testing.T) {
	cs := NewChatService()

	messages, err := cs.Reply(models.Place{Name: "X"}, "what about the price?")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.True(t, messages[0].IsUser)
	assert.Equal(t, "what about the price?", messages[0].Text)
	assert.False(t, messages[1].IsUser)
	assert.NotEqual(t, messages[0].ID, messages[1].ID)

	_, err = cs.Reply(models.Place{Name: "X"}, "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
