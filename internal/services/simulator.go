package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DemoUser is a fabricated social-media account used in investor demos.
type DemoUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Avatar   string `json:"avatar"`
}

// SimulatedMessage is a fabricated inbound or outbound chat message.
type SimulatedMessage struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Avatar    string    `json:"user_avatar"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Simulated bool      `json:"simulated"`
}

type SimulatedTurn struct {
	Type      string    `json:"type"` // "customer" or "ai"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DemoStats aggregates simulator activity for the investor dashboard.
type DemoStats struct {
	TotalConversations int            `json:"total_conversations"`
	TotalMessages      int            `json:"total_messages"`
	Platforms          map[string]int `json:"platforms"`
	ActiveDemoUsers    []DemoUser     `json:"active_demo_users"`
}

var demoUsers = []DemoUser{
	{ID: "ig_customer_001", Name: "Sarah M.", Platform: "instagram", Avatar: "👩‍💼"},
	{ID: "wa_customer_002", Name: "Mike T.", Platform: "whatsapp", Avatar: "👨‍💻"},
	{ID: "ig_customer_003", Name: "Alex J.", Platform: "instagram", Avatar: "👩‍🎨"},
	{ID: "wa_customer_004", Name: "David L.", Platform: "whatsapp", Avatar: "👨‍🔧"},
}

var demoQuestions = []string{
	"Where is my order #ORD12345?",
	"Do you have this in blue?",
	"What's your return policy?",
	"How long does shipping take?",
	"Do you ship to Canada?",
	"My order arrived damaged, what should I do?",
	"What's the estimated delivery time?",
	"Can I change my shipping address?",
	"Do you have size guides?",
	"Is this product in stock?",
}

// SocialSimulator fabricates Instagram and WhatsApp traffic for
// presentations. State lives behind a mutex; demo endpoints may be
// hit concurrently with the cron auto-traffic loop.
type SocialSimulator struct {
	mu            sync.Mutex
	conversations map[string][]SimulatedTurn
	rng           *rand.Rand
}

func NewSocialSimulator() *SocialSimulator {
	return &SocialSimulator{
		conversations: make(map[string][]SimulatedTurn),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SimulateIncoming fabricates a customer message. The platform is
// caller-controlled demo input; empty or unknown values fall back to
// a random platform with demo users.
func (s *SocialSimulator) SimulateIncoming(platform string) SimulatedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if platform != "instagram" && platform != "whatsapp" {
		platform = []string{"instagram", "whatsapp"}[s.rng.Intn(2)]
	}

	candidates := make([]DemoUser, 0, len(demoUsers))
	for _, u := range demoUsers {
		if u.Platform == platform {
			candidates = append(candidates, u)
		}
	}
	user := candidates[s.rng.Intn(len(candidates))]

	msg := SimulatedMessage{
		ID:        uuid.NewString(),
		Platform:  platform,
		UserID:    user.ID,
		UserName:  user.Name,
		Avatar:    user.Avatar,
		Message:   demoQuestions[s.rng.Intn(len(demoQuestions))],
		Timestamp: time.Now(),
		Simulated: true,
	}

	s.conversations[user.ID] = append(s.conversations[user.ID], SimulatedTurn{
		Type:      "customer",
		Message:   msg.Message,
		Timestamp: msg.Timestamp,
	})

	log.Info().Str("user", user.Name).Str("platform", platform).Str("message", msg.Message).Msg("[SIM] customer message")
	return msg
}

// RecordAgentReply stores the pipeline's reply against the simulated
// user and returns the outbound message shape for the demo surface.
func (s *SocialSimulator) RecordAgentReply(userID, reply string) SimulatedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := DemoUser{ID: userID, Name: "Customer", Platform: "unknown", Avatar: "👤"}
	for _, u := range demoUsers {
		if u.ID == userID {
			user = u
			break
		}
	}

	msg := SimulatedMessage{
		ID:        uuid.NewString(),
		Platform:  user.Platform,
		UserID:    user.ID,
		UserName:  "AI Assistant",
		Avatar:    "🤖",
		Message:   reply,
		Timestamp: time.Now(),
		Simulated: true,
	}

	if _, ok := s.conversations[user.ID]; ok {
		s.conversations[user.ID] = append(s.conversations[user.ID], SimulatedTurn{
			Type:      "ai",
			Message:   reply,
			Timestamp: msg.Timestamp,
		})
	}

	log.Info().Str("platform", user.Platform).Msg("[SIM] AI reply recorded")
	return msg
}

// History returns the simulated exchange for one demo user.
func (s *SocialSimulator) History(userID string) []SimulatedTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.conversations[userID]
	out := make([]SimulatedTurn, len(turns))
	copy(out, turns)
	return out
}

// DemoUsers returns the fixed demo roster.
func (s *SocialSimulator) DemoUsers() []DemoUser {
	out := make([]DemoUser, len(demoUsers))
	copy(out, demoUsers)
	return out
}

// Stats aggregates simulator activity for the dashboard.
func (s *SocialSimulator) Stats() DemoStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, turns := range s.conversations {
		total += len(turns)
	}

	platforms := make(map[string]int)
	for _, u := range demoUsers {
		platforms[u.Platform]++
	}

	return DemoStats{
		TotalConversations: len(s.conversations),
		TotalMessages:      total,
		Platforms:          platforms,
		ActiveDemoUsers:    s.DemoUsers(),
	}
}
