package domain

// User identifies a Ryver account. Username is the stable identity used for
// cooldown keys and admin checks.
type User struct {
	ID       int
	Username string
	JID      string
}

// Message is a chat message as delivered by the live session or fetched over
// REST. Ryver message IDs are opaque strings.
type Message struct {
	ID      string
	ChatJID string
	From    User
	Text    string
}

// Reactions maps a reaction symbol to the IDs of the users who applied it.
type Reactions map[string][]int

// Task is a task-board entry. Poll reminders ride on tasks so the platform
// owns the timer state, not the bot.
type Task struct {
	ID      int
	Subject string
	Body    string
}

// Notification predicates and entity types the bot cares about.
const (
	PredicateReminder = "reminder_for"
	EntityTask        = "Entity.Tasks.Task"
)

// Notification is a platform notification. Reminder notifications for
// task-board tasks are the deferred callbacks the scheduler registered.
type Notification struct {
	ID         int
	Predicate  string
	EntityType string
	ObjectID   int
}

// TriviaQuestion is one entry from the trivia store.
type TriviaQuestion struct {
	ID       int    `db:"id"`
	Question string `db:"question"`
	Answer   string `db:"answer"`
}

// Deck holds the card game content: prompt cards with blanks and answer
// cards to fill them.
type Deck struct {
	Prompts []string
	Answers []string
}
