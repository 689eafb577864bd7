package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"review-explorer/apperrors"
	"review-explorer/models"
)

type cannedAnswer struct {
	keywords []string
	answer   string
}

// Checked in order; the first group with a matching keyword answers.
var cannedAnswers = []cannedAnswer{
	{
		keywords: []string{"food", "menu", "dish"},
		answer:   "Based on reviews, customers frequently praise the pasta dishes and Italian cuisine. The food quality is consistently rated highly, with many mentioning perfectly cooked pasta and authentic flavors. However, some note that portions could be larger for the price point.",
	},
	{
		keywords: []string{"service", "staff", "waiter"},
		answer:   "Reviews indicate that the staff is generally friendly and knowledgeable. Most customers appreciate the attentive service, though a few reviews mention that service can be slower during peak hours. The staff seems well-trained in explaining menu items.",
	},
	{
		keywords: []string{"price", "cost", "expensive"},
		answer:   "The restaurant is considered moderately to highly priced. Customers generally feel the quality justifies the cost, especially for special occasions. Many reviews suggest it's worth the price for the quality and atmosphere, but might not be suitable for casual everyday dining.",
	},
	{
		keywords: []string{"atmosphere", "ambiance", "romantic"},
		answer:   "The atmosphere is consistently praised as romantic and intimate. Customers frequently recommend it for special occasions, date nights, and celebrations. The lighting and decor create a cozy, upscale dining environment that many find perfect for romantic dinners.",
	},
	{
		keywords: []string{"parking", "location", "access"},
		answer:   "The location is convenient and central, but parking can be challenging. Several reviews mention limited parking availability. Many customers recommend using public transportation or ride-sharing services when visiting.",
	},
	{
		keywords: []string{"reservation", "wait", "busy"},
		answer:   "Based on reviews, reservations are highly recommended, especially for dinner and weekends. Customers who made reservations had positive experiences, while those without sometimes faced longer wait times. The restaurant appears to be consistently busy.",
	},
	{
		keywords: []string{"recommend", "should i", "worth"},
		answer:   "Based on the overall sentiment, I'd recommend this place for special occasions and romantic dinners. The quality of food and atmosphere consistently receives praise. However, consider the higher price point and make reservations in advance for the best experience.",
	},
}

const defaultAnswer = "That's an interesting question! Based on the available reviews, customers generally have positive experiences at this place. The quality and atmosphere are consistently praised, though some mention the higher price point. Would you like me to elaborate on any specific aspect like food, service, or atmosphere?"

// ChatService answers questions about a place from canned, keyword matched replies.
type ChatService struct {
	now    func() time.Time
	nextID atomic.Int64
}

// NewChatService constructs a ChatService.
func NewChatService() *ChatService {
	return &ChatService{now: time.Now}
}

// Greeting is the assistant's opening message for place.
func (cs *ChatService) Greeting(place models.Place) models.ChatMessage {
	return cs.message(fmt.Sprintf("Hi! I'm your AI assistant. I can help you learn more about %s based on customer reviews. What would you like to know?", place.Name), false)
}

// Reply returns the user's message followed by the assistant's answer.
func (cs *ChatService) Reply(place models.Place, question string) ([]models.ChatMessage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.InvalidInput("question must not be empty")
	}
	return []models.ChatMessage{
		cs.message(question, true),
		cs.message(Answer(question), false),
	}, nil
}

// Answer picks the canned answer for question.
func Answer(question string) string {
	q := strings.ToLower(question)
	for _, group := range cannedAnswers {
		for _, keyword := range group.keywords {
			if strings.Contains(q, keyword) {
				return group.answer
			}
		}
	}
	return defaultAnswer
}

func (cs *ChatService) message(text string, isUser bool) models.ChatMessage {
	now := cs.now()
	id := now.UnixMilli() + cs.nextID.Add(1)
	return models.ChatMessage{
		ID:        strconv.FormatInt(id, 10),
		Text:      text,
		IsUser:    isUser,
		Timestamp: now,
	}
}
