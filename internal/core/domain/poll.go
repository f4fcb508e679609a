package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TaskSubjectPrefix marks task-board tasks that back a pending poll reminder.
// The poll message ID follows the prefix.
const TaskSubjectPrefix = "HuddlePoll#"

// Poll associates option labels with reaction symbols in stable order:
// option i is voted on with reaction i.
type Poll struct {
	Title     string
	Options   []string
	Reactions []string
}

// NewPoll builds a poll from the parsed command fields (title first, then
// options) and the configured reaction symbols. The symbol list bounds the
// number of options.
func NewPoll(fields []string, symbols []string) (*Poll, error) {
	if len(fields) < 3 {
		return nil, ErrTooFewOptions
	}

	options := fields[1:]
	if len(options) > len(symbols) {
		return nil, ErrTooManyOptions
	}

	return &Poll{
		Title:     fields[0],
		Options:   options,
		Reactions: symbols[:len(options)],
	}, nil
}

// EncodeBody serializes the poll into the reminder task body. Options and
// reactions are separated by a double semicolon so the poll can be rebuilt
// from the task alone when the reminder fires.
func (p *Poll) EncodeBody() string {
	return strings.Join(append([]string{p.Title}, p.Options...), ";") +
		";;" + strings.Join(p.Reactions, ";")
}

// ParsePollBody rebuilds a poll from a reminder task body.
func ParsePollBody(body string) (*Poll, error) {
	parts := strings.SplitN(body, ";;", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: missing option/reaction separator", ErrMalformedBody)
	}

	head := strings.Split(parts[0], ";")
	if len(head) < 2 {
		return nil, fmt.Errorf("%w: no options", ErrMalformedBody)
	}

	reactions := strings.Split(parts[1], ";")
	if len(reactions) != len(head)-1 {
		return nil, fmt.Errorf("%w: %d options but %d reactions",
			ErrMalformedBody, len(head)-1, len(reactions))
	}

	return &Poll{Title: head[0], Options: head[1:], Reactions: reactions}, nil
}

// Render formats the poll message. A non-nil due time appends the closing
// notice.
func (p *Poll) Render(due *time.Time) string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "# %s\n", p.Title)
	for i, option := range p.Options {
		fmt.Fprintf(sb, ":%s: %s\n", p.Reactions[i], option)
	}

	if due != nil {
		fmt.Fprintf(sb, "\n\n**Poll will end on %s at %s (%s)**",
			due.Format("2006-01-02"), due.Format("15:04:05"), due.Format("MST"))
	}

	return sb.String()
}

// VoteCount is the tally for a single reaction symbol.
type VoteCount struct {
	Reaction string
	Count    int
}

// Tally counts distinct reacting users per symbol, excluding the bot's own
// seed reactions, sorted by count descending. Ties keep poll option order;
// symbols outside the poll sort after known ones.
func (p *Poll) Tally(reactions Reactions, botID int) []VoteCount {
	votes := make([]VoteCount, 0, len(reactions))
	for symbol, users := range reactions {
		count := 0
		for _, id := range users {
			if id != botID {
				count++
			}
		}
		votes = append(votes, VoteCount{Reaction: symbol, Count: count})
	}

	rank := func(symbol string) int {
		for i, r := range p.Reactions {
			if r == symbol {
				return i
			}
		}
		return len(p.Reactions)
	}

	sort.SliceStable(votes, func(i, j int) bool {
		if votes[i].Count != votes[j].Count {
			return votes[i].Count > votes[j].Count
		}
		ri, rj := rank(votes[i].Reaction), rank(votes[j].Reaction)
		if ri != rj {
			return ri < rj
		}
		return votes[i].Reaction < votes[j].Reaction
	})

	return votes
}

// ResultsMessage formats the closing summary. Every symbol holding the top
// count is bolded as a winner, so ties mark all of them.
func (p *Poll) ResultsMessage(votes []VoteCount) string {
	byReaction := make(map[string]string, len(p.Reactions))
	for i, symbol := range p.Reactions {
		byReaction[symbol] = p.Options[i]
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "## Poll results: %s", p.Title)

	top := 0
	if len(votes) > 0 {
		top = votes[0].Count
	}

	for _, vote := range votes {
		bold := ""
		if vote.Count == top {
			bold = "**"
		}

		option := ""
		if label, ok := byReaction[vote.Reaction]; ok {
			option = " " + label
		}

		fmt.Fprintf(sb, "\n%s%d : :%s:%s%s", bold, vote.Count, vote.Reaction, option, bold)
	}

	return sb.String()
}
