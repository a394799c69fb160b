package chat

// Subject is an academic topic. Every message of a session is sent with its label.
type Subject struct {
	ID    string
	Label string
	Emoji string
}

func (subject Subject) String() string {
	return subject.Emoji + " " + subject.Label
}

var subjects = []Subject{
	{ID: "matematica", Label: "Matemática", Emoji: "📐"},
	{ID: "fisica", Label: "Física", Emoji: "⚡"},
	{ID: "quimica", Label: "Química", Emoji: "🧪"},
	{ID: "biologia", Label: "Biologia", Emoji: "🧬"},
	{ID: "historia", Label: "História", Emoji: "📜"},
	{ID: "geografia", Label: "Geografia", Emoji: "🌍"},
	{ID: "portugues", Label: "Português", Emoji: "📝"},
	{ID: "filosofia", Label: "Filosofia", Emoji: "💭"},
}

// Subjects returns the catalog in display order.
func Subjects() []Subject {
	result := make([]Subject, len(subjects))
	copy(result, subjects)
	return result
}

func FindSubjectByID(id string) (Subject, bool) {
	for _, subject := range subjects {
		if subject.ID == id {
			return subject, true
		}
	}
	return Subject{}, false
}

// FindSubjectByLabel resolves the label stored on a backend session.
func FindSubjectByLabel(label string) (Subject, bool) {
	for _, subject := range subjects {
		if subject.Label == label {
			return subject, true
		}
	}
	return Subject{}, false
}
