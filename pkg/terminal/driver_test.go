//go:build !windows

package terminal_test

import (
	"context"
	"testing"
	"time"

	"github.com/AlecAivazis/survey/v2"
	surveyterm "github.com/AlecAivazis/survey/v2/terminal"
	expect "github.com/Netflix/go-expect"
	pseudotty "github.com/creack/pty"
	"github.com/google/go-cmp/cmp"
	"github.com/hinshun/vt10x"

	"github.com/goliatone/go-formbutton/pkg/forms"
	"github.com/goliatone/go-formbutton/pkg/terminal"
)

type console struct {
	t *testing.T
	c *expect.Console
}

func (c console) expect(s string) {
	if _, err := c.c.ExpectString(s); err != nil {
		c.t.Errorf("ExpectString(%q) = %v", s, err)
	}
}

func (c console) send(s string) {
	if _, err := c.c.Send(s); err != nil {
		c.t.Errorf("Send(%q) = %v", s, err)
	}
}

func (c console) sendLine(s string) {
	if _, err := c.c.SendLine(s); err != nil {
		c.t.Errorf("SendLine(%q) = %v", s, err)
	}
}

// runConsole drives a SurveyDriver attached to a pseudo terminal. script
// plays the user's side while run asks the questions.
func runConsole(t *testing.T, script func(console), run func(*terminal.SurveyDriver)) {
	t.Helper()

	pty, tty, err := pseudotty.Open()
	if err != nil {
		t.Fatalf("open pseudo terminal: %v", err)
	}
	term := vt10x.New(vt10x.WithWriter(tty))
	c, err := expect.NewConsole(
		expect.WithStdin(pty),
		expect.WithStdout(term),
		expect.WithCloser(pty, tty),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("new console: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		script(console{t: t, c: c})
		if _, err := c.ExpectEOF(); err != nil {
			t.Errorf("ExpectEOF() = %v", err)
		}
	}()

	run(terminal.NewSurveyDriver(survey.WithStdio(c.Tty(), c.Tty(), c.Tty())))

	if err := c.Tty().Close(); err != nil {
		t.Errorf("close tty: %v", err)
	}
	<-done
}

func TestSurveyDriver_InputRepromptsUntilClean(t *testing.T) {
	def := forms.MustDefinition(forms.Field{Name: "batch", Type: forms.TypeInteger})

	var got []string
	runConsole(t, func(c console) {
		c.expect("Batch")
		c.sendLine("many")
		c.expect("Enter a whole number.")
		c.sendLine("7")
	}, func(d *terminal.SurveyDriver) {
		var err error
		got, err = d.Ask(context.Background(), def.Fields()[0])
		if err != nil {
			t.Errorf("ask: %v", err)
		}
	})

	if diff := cmp.Diff([]string{"7"}, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestSurveyDriver_SelectReturnsChoiceValue(t *testing.T) {
	def := forms.MustDefinition(forms.Field{Name: "audience", Type: forms.TypeChoice, Choices: []forms.Choice{
		{Value: "all", Label: "Everyone"},
		{Value: "staff", Label: "Staff"},
	}})

	var got []string
	runConsole(t, func(c console) {
		c.expect("Audience")
		c.expect("---------")
		c.expect("Staff")
		c.send(string(surveyterm.KeyArrowDown))
		c.sendLine(string(surveyterm.KeyArrowDown))
	}, func(d *terminal.SurveyDriver) {
		var err error
		got, err = d.Ask(context.Background(), def.Fields()[0])
		if err != nil {
			t.Errorf("ask: %v", err)
		}
	})

	if diff := cmp.Diff([]string{"staff"}, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestSurveyDriver_InfoWritesToConfiguredOutput(t *testing.T) {
	runConsole(t, func(c console) {
		c.expect("Skipping Attachment")
	}, func(d *terminal.SurveyDriver) {
		if err := d.Info(context.Background(), "Skipping Attachment"); err != nil {
			t.Errorf("info: %v", err)
		}
	})
}

func TestSurveyDriver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := terminal.NewSurveyDriver()
	if _, err := d.Ask(ctx, forms.Text("title", "Title")); err == nil {
		t.Fatalf("expected context error")
	}
}
