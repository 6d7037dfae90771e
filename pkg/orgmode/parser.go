package orgmode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
	"github.com/rs/zerolog"
)

// DefaultEffort is used for headlines without an :EFFORT: property, in minutes.
const DefaultEffort = 30

var (
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s*(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:([\w@#%]+(:[\w@#%]+)*):))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})(?:\s+[A-Za-z]{2,3})?(?:\s+(\d{1,2}:\d{2}))?[^>]*>`)
	propertyRegex = regexp.MustCompile(`(?i)^:(ID|EFFORT):\s+(\S+)`)
)

// Parser turns TODO headlines of Org-mode files into scheduler tasks for one day.
type Parser struct {
	day time.Time
	tag string
	log zerolog.Logger
}

// NewParser creates a parser resolving deadlines against day. A non-empty
// tag keeps only headlines carrying it.
func NewParser(day time.Time, tag string, log zerolog.Logger) *Parser {
	return &Parser{day: day, tag: tag, log: log}
}

// ParseFiles parses multiple Org-mode files and returns their tasks in file order.
func (p *Parser) ParseFiles(filePaths []string) ([]model.Task, error) {
	var allTasks []model.Task
	for _, filePath := range filePaths {
		tasks, err := p.parseFile(filePath)
		if err != nil {
			return nil, err
		}
		allTasks = append(allTasks, tasks...)
	}
	return allTasks, nil
}

func (p *Parser) parseFile(filePath string) ([]model.Task, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return p.Parse(file, filePath)
}

type entry struct {
	task model.Task
	done bool
	tags []string
}

// Parse parses an Org-mode reader and returns the open tasks it describes.
func (p *Parser) Parse(r io.Reader, source string) ([]model.Task, error) {
	p.log.Debug().Str("source", source).Msg("parsing org file")

	scanner := bufio.NewScanner(r)
	var tasks []model.Task
	var current *entry

	flush := func() error {
		if current == nil {
			return nil
		}
		e := current
		current = nil
		if e.done || !p.matchesTag(e.tags) {
			return nil
		}
		if e.task.ID == "" {
			e.task.ID = uuid.NewString()
		}
		if err := e.task.Validate(); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		tasks = append(tasks, e.task)
		return nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "*") {
			if err := flush(); err != nil {
				return nil, err
			}
			matches := headlineRegex.FindStringSubmatch(line)
			if matches == nil {
				continue
			}
			current = &entry{
				done: matches[1] == "DONE",
				task: model.Task{
					Name:     strings.TrimSpace(matches[3]),
					Duration: DefaultEffort,
					Priority: priorityFromCookie(matches[2]),
				},
			}
			if matches[4] != "" {
				current.tags = strings.Split(strings.Trim(matches[4], ":"), ":")
			}
			continue
		}
		if current == nil {
			continue
		}

		if matches := deadlineRegex.FindStringSubmatch(line); matches != nil {
			due, err := parseDeadline(matches[1], matches[2], p.day.Location())
			if err != nil {
				p.log.Warn().Err(err).Str("source", source).Int("line", lineNo).Msg("ignoring malformed deadline")
			} else {
				current.task.Deadline = clock.DeadlineOn(due, p.day)
			}
		}
		if matches := propertyRegex.FindStringSubmatch(line); matches != nil {
			switch strings.ToUpper(matches[1]) {
			case "ID":
				current.task.ID = matches[2]
			case "EFFORT":
				minutes, err := parseEffort(matches[2])
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", source, lineNo, err)
				}
				current.task.Duration = minutes
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (p *Parser) matchesTag(tags []string) bool {
	if p.tag == "" {
		return true
	}
	for _, tag := range tags {
		if tag == p.tag {
			return true
		}
	}
	return false
}

func priorityFromCookie(cookie string) model.Priority {
	switch cookie {
	case "A":
		return model.PriorityHigh
	case "C":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

// parseDeadline reads an Org timestamp. A date without a time is due at 23:59.
func parseDeadline(date, hhmm string, loc *time.Location) (time.Time, error) {
	if hhmm == "" {
		hhmm = "23:59"
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, loc)
}

// parseEffort reads an Org effort value, either H:MM or plain minutes.
func parseEffort(s string) (int, error) {
	if strings.Contains(s, ":") {
		h, m, _ := strings.Cut(s, ":")
		hours, err1 := strconv.Atoi(h)
		minutes, err2 := strconv.Atoi(m)
		if err1 != nil || err2 != nil || hours < 0 || minutes < 0 || minutes > 59 {
			return 0, fmt.Errorf("invalid effort %q", s)
		}
		return hours*clock.MinutesPerHour + minutes, nil
	}
	minutes, err := strconv.Atoi(s)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid effort %q", s)
	}
	return minutes, nil
}
