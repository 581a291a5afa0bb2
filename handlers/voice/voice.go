package voice

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sahilchouksey/uniadvisor-api/config"
	"github.com/sahilchouksey/uniadvisor-api/utils/cache"
	"github.com/sahilchouksey/uniadvisor-api/utils/middleware"
	"github.com/sahilchouksey/uniadvisor-api/utils/response"
)

const tokenTTL = 10 * time.Minute

// VoiceHandler issues room access tokens for the counsellor voice agent
// and accepts out-of-band refresh signals from it.
type VoiceHandler struct {
	env   *config.EnviornmentVariable
	cache *cache.RedisCache
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(env *config.EnviornmentVariable, redisCache *cache.RedisCache) *VoiceHandler {
	return &VoiceHandler{
		env:   env,
		cache: redisCache,
	}
}

// videoGrant mirrors the room permissions embedded in a LiveKit access token
type videoGrant struct {
	RoomJoin       bool   `json:"roomJoin"`
	Room           string `json:"room"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

type tokenClaims struct {
	Name  string     `json:"name"`
	Video videoGrant `json:"video"`
	jwt.RegisteredClaims
}

// TokenResponse is returned by GET /api/v1/voice/token
type TokenResponse struct {
	Token string `json:"token"`
	Room  string `json:"room"`
}

// Token handles GET /api/v1/voice/token. Each student gets a dedicated
// counsellor room keyed by their user id.
func (h *VoiceHandler) Token(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	if h.env.LIVEKIT_API_KEY == "" || h.env.LIVEKIT_API_SECRET == "" {
		return response.InternalServerError(c, "Voice service is not configured")
	}

	room := fmt.Sprintf("counsellor-%d", user.ID)
	name := user.FullName
	if name == "" {
		name = user.Email
	}

	now := time.Now()
	claims := tokenClaims{
		Name: name,
		Video: videoGrant{
			RoomJoin:       true,
			Room:           room,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    h.env.LIVEKIT_API_KEY,
			Subject:   fmt.Sprintf("%d", user.ID),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.env.LIVEKIT_API_SECRET))
	if err != nil {
		return response.InternalServerError(c, "Failed to sign token")
	}

	return response.Success(c, TokenResponse{Token: signed, Room: room})
}

// NotifyRequest is the body the voice agent posts after it mutates a
// student's selections on their behalf.
type NotifyRequest struct {
	UserID uint `json:"user_id"`
}

// Notify handles POST /api/v1/voice/notify. The agent authenticates with
// a shared key; the signal only drops the cached selections so the next
// dashboard read refetches.
func (h *VoiceHandler) Notify(c *fiber.Ctx) error {
	if h.env.AGENT_API_KEY == "" || c.Get("X-Agent-Key") != h.env.AGENT_API_KEY {
		return response.Unauthorized(c, "Invalid agent key")
	}

	var req NotifyRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return response.BadRequest(c, "Invalid request body")
	}

	if h.cache != nil {
		_ = h.cache.Delete(c.Context(), cache.SelectionsKey(req.UserID))
	}

	return response.SuccessWithMessage(c, "Acknowledged", nil)
}
