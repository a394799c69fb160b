package chat

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/profile"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	WelcomeMessageID     = "welcome"
	ErrorMessageIDPrefix = "error-"

	ApologyContent     = "Desculpe, tive um problema ao processar sua mensagem. Pode tentar novamente?"
	DefaultImagePrompt = "Por favor, analise esta imagem e me ajude a entender."
)

type Message struct {
	ID        string
	Role      Role
	Content   string
	HasImage  bool
	Timestamp time.Time
}

// IsErrorPlaceholder reports whether the message stands in for a failed reply.
func (message Message) IsErrorPlaceholder() bool {
	return message.Role == RoleAssistant && strings.HasPrefix(message.ID, ErrorMessageIDPrefix)
}

// WelcomeMessage greets the learner by name and promises analogies from their cultural interest.
func WelcomeMessage(p profile.Profile, now time.Time) Message {
	return Message{
		ID:   WelcomeMessageID,
		Role: RoleAssistant,
		Content: fmt.Sprintf("E aí, **%s**! 👋\n\n"+
			"Sou o **Mindly**, seu tutor de IA personalizado!\n\n"+
			"Vi que você curte **%s** - vou usar isso pra criar analogias que fazem sentido pra você.\n\n"+
			"**Escolha uma matéria** e manda sua dúvida! Pode mandar texto ou foto de uma questão. 📚",
			p.Name, p.CulturalInterest),
		Timestamp: now,
	}
}

func newUserMessage(text string, hasImage bool, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   text,
		HasImage:  hasImage,
		Timestamp: now,
	}
}

func newApologyMessage(now time.Time) Message {
	return Message{
		ID:        fmt.Sprintf("%s%d", ErrorMessageIDPrefix, now.UnixMilli()),
		Role:      RoleAssistant,
		Content:   ApologyContent,
		Timestamp: now,
	}
}

// FromHistory converts a stored backend message. An unparsable timestamp is kept as the zero time.
func FromHistory(history api.HistoryMessage) Message {
	timestamp, err := api.ParseTimestamp(history.Timestamp)
	if err != nil {
		slog.Default().Debug("ignoring message timestamp",
			"messageID", history.ID,
			"error", err)
	}
	return Message{
		ID:        history.ID,
		Role:      Role(history.Role),
		Content:   history.Content,
		HasImage:  history.HasImage,
		Timestamp: timestamp,
	}
}
