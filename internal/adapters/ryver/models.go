package ryver

import "encoding/json"

// The Ryver odata API wraps every payload in a "d" envelope; list endpoints
// add a "results" layer inside it.

type envelope struct {
	D json.RawMessage `json:"d"`
}

type results struct {
	Results json.RawMessage `json:"results"`
}

type userDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	JID      string `json:"jid"`
	TimeZone string `json:"timeZone"`
}

type chatDTO struct {
	ID   int    `json:"id"`
	JID  string `json:"jid"`
	Name string `json:"name"`
}

type messageDTO struct {
	ID        string           `json:"id"`
	Body      string           `json:"body"`
	Reactions map[string][]int `json:"__reactions"`
	From      struct {
		ID int `json:"id"`
	} `json:"from"`
}

type taskDTO struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type notificationDTO struct {
	ID         int    `json:"id"`
	Predicate  string `json:"predicate"`
	ObjectType string `json:"objectType"`
	ObjectID   int    `json:"objectId"`
	Unread     bool   `json:"unread"`
}

type infoDTO struct {
	Me userDTO `json:"me"`
}

type postMessageRequest struct {
	Body         string       `json:"body"`
	CreateSource createSource `json:"createSource"`
}

type createSource struct {
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type reactRequest struct {
	ID       string `json:"id"`
	Reaction string `json:"reaction"`
}

type createTaskRequest struct {
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	DueDate string  `json:"dueDate"`
	Board   boardID `json:"board"`
}

type boardID struct {
	ID int `json:"id"`
}

type createReminderRequest struct {
	When string `json:"when"`
}

type notificationStatusRequest struct {
	Unread bool `json:"unread"`
	New    bool `json:"new"`
}
