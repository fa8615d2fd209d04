// Package command parses console input into game commands. Verbs and ids
// tolerate small typos.
package command

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

type CommandType string

const (
	CmdHelp      CommandType = "help"
	CmdStatus    CommandType = "status"
	CmdInventory CommandType = "inventory"
	CmdSkills    CommandType = "skills"
	CmdActions   CommandType = "actions"
	CmdDo        CommandType = "do"
	CmdChoose    CommandType = "choose"
	CmdTrain     CommandType = "train"
	CmdKeep      CommandType = "keep"
	CmdDiscard   CommandType = "discard"
	CmdLog       CommandType = "log"
	CmdSheet     CommandType = "sheet"
	CmdCopy      CommandType = "copy"
	CmdQuit      CommandType = "quit"
	CmdNone      CommandType = "" // not recognized
)

var known = map[string]CommandType{
	"help":      CmdHelp,
	"h":         CmdHelp,
	"?":         CmdHelp,
	"status":    CmdStatus,
	"look":      CmdStatus,
	"l":         CmdStatus,
	"inventory": CmdInventory,
	"i":         CmdInventory,
	"skills":    CmdSkills,
	"actions":   CmdActions,
	"a":         CmdActions,
	"do":        CmdDo,
	"perform":   CmdDo,
	"choose":    CmdChoose,
	"c":         CmdChoose,
	"pick":      CmdChoose,
	"train":     CmdTrain,
	"keep":      CmdKeep,
	"take":      CmdKeep,
	"discard":   CmdDiscard,
	"drop":      CmdDiscard,
	"log":       CmdLog,
	"events":    CmdLog,
	"sheet":     CmdSheet,
	"character": CmdSheet,
	"copy":      CmdCopy,
	"quit":      CmdQuit,
	"q":         CmdQuit,
	"exit":      CmdQuit,
}

// Command is a parsed line of input.
type Command struct {
	Type CommandType
	Arg  string // remainder of the line, trimmed
	// Suggestions holds the candidate verbs when the input was ambiguous.
	Suggestions []CommandType
}

// Parse reads a verb and an optional argument. A leading slash is ignored
// so "/copy" and "copy" are the same command. Unknown verbs within a small
// edit distance of exactly one known verb are corrected.
func Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return Command{}
	}

	verb, arg, _ := strings.Cut(trimmed, " ")
	verb = strings.ToLower(verb)
	arg = strings.TrimSpace(arg)

	if cmd, ok := known[verb]; ok {
		return Command{Type: cmd, Arg: arg}
	}

	matches := fuzzyVerbs(verb)
	switch len(matches) {
	case 0:
		return Command{Arg: arg}
	case 1:
		return Command{Type: matches[0], Arg: arg}
	default:
		return Command{Arg: arg, Suggestions: matches}
	}
}

// fuzzyVerbs returns the distinct commands whose aliases are closest to
// verb. Aliases shorter than three letters never match fuzzily.
func fuzzyVerbs(verb string) []CommandType {
	if len(verb) < 3 {
		return nil
	}
	best := -1
	var out []CommandType
	for alias, cmd := range known {
		if len(alias) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(verb, alias)
		if dist > limit(len(alias)) {
			continue
		}
		switch {
		case best == -1 || dist < best:
			best = dist
			out = []CommandType{cmd}
		case dist == best && !slices.Contains(out, cmd):
			out = append(out, cmd)
		}
	}
	slices.Sort(out)
	return out
}

// MatchID resolves arg against ids, ignoring case and tolerating small
// typos. ok is false when nothing is close or two ids are equally close.
func MatchID(arg string, ids []string) (id string, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(arg))
	if needle == "" {
		return "", false
	}
	best, tied := -1, false
	for _, candidate := range ids {
		lower := strings.ToLower(candidate)
		if lower == needle {
			return candidate, true
		}
		dist := levenshtein.ComputeDistance(needle, lower)
		if dist > limit(len(lower)) {
			continue
		}
		switch {
		case best == -1 || dist < best:
			best, id, tied = dist, candidate, false
		case dist == best:
			tied = true
		}
	}
	if best == -1 || tied {
		return "", false
	}
	return id, true
}

func limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
