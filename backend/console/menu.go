package console

import (
	"errors"
	"fmt"
	"strings"
)

type item struct {
	key     string
	label   string
	handler Handler
	exit    bool
}

// Menu is a numbered list of actions shown in a loop until an exit item
// is chosen, a handler returns ErrExitMenu, or input ends.
type Menu struct {
	Title      string
	items      []item
	middleware []Middleware
}

func NewMenu(title string) *Menu {
	return &Menu{Title: title}
}

// Use adds middleware wrapping every handler of this menu.
func (m *Menu) Use(mw ...Middleware) {
	m.middleware = append(m.middleware, mw...)
}

// Add registers an action. Item middleware runs inside menu middleware.
func (m *Menu) Add(key, label string, h Handler, mw ...Middleware) {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	m.items = append(m.items, item{key: key, label: label, handler: h})
}

// Exit registers an item that leaves the menu after running h (which may be nil).
func (m *Menu) Exit(key, label string, h Handler) {
	m.items = append(m.items, item{key: key, label: label, handler: h, exit: true})
}

func (m *Menu) render(c *Ctx) {
	c.Println()
	c.Println(m.Title)
	for _, it := range m.items {
		c.Printf("%s. %s\n", it.key, it.label)
	}
}

func (m *Menu) promptText() string {
	if len(m.items) == 0 {
		return "Choose option: "
	}
	return fmt.Sprintf("Choose option (%s-%s): ", m.items[0].key, m.items[len(m.items)-1].key)
}

func (m *Menu) find(choice string) (item, bool) {
	choice = strings.TrimSpace(choice)
	for _, it := range m.items {
		if it.key == choice {
			return it, true
		}
	}
	return item{}, false
}

func (m *Menu) wrap(h Handler) Handler {
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Run shows the menu until it is left. Handler errors other than
// ErrExitMenu, including io.EOF, are returned to the caller.
func (m *Menu) Run(c *Ctx) error {
	for {
		m.render(c)

		choice, err := c.Prompt(m.promptText())
		if err != nil {
			return err
		}

		it, ok := m.find(choice)
		if !ok {
			c.Println("Invalid option!")
			continue
		}

		if it.handler != nil {
			prev := c.Action
			c.Action = it.label
			err := m.wrap(it.handler)(c)
			c.Action = prev

			if errors.Is(err, ErrExitMenu) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		if it.exit {
			return nil
		}
	}
}
