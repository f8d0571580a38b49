package demo

import (
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/forms"
)

//go:embed openapi.yaml
var openAPISpec []byte

// NewsletterOperation is the operation the newsletter form is built from.
const NewsletterOperation = "sendNewsletter"

var ImportForm = forms.MustDefinition(
	forms.Field{Name: "source", Type: forms.TypeURL, Required: true, HelpText: "Feed to import from."},
	forms.Field{Name: "count", Type: forms.TypeInteger, Required: true, Initial: 3, Min: forms.Bound(1), Max: forms.Bound(50)},
	forms.Field{Name: "status", Type: forms.TypeChoice, Required: true, Initial: StatusDraft, Choices: []forms.Choice{
		{Value: StatusDraft, Label: "Draft"},
		{Value: StatusPublished, Label: "Published"},
	}},
	forms.Field{Name: "tags", Type: forms.TypeMultipleChoice, Choices: []forms.Choice{
		{Value: "go", Label: "Go"},
		{Value: "web", Label: "Web"},
		{Value: "ops", Label: "Operations"},
	}},
)

var UploadForm = forms.MustDefinition(
	forms.Field{
		Name:     "file",
		Label:    "CSV file",
		Type:     forms.TypeFile,
		Required: true,
		HelpText: "One title per row. A first row named <code>title</code> is skipped.",
	},
)

type importInput struct {
	Source string   `form:"source"`
	Count  int      `form:"count"`
	Status string   `form:"status"`
	Tags   []string `form:"tags"`
}

type newsletterInput struct {
	Subject  string    `form:"subject"`
	Audience string    `form:"audience"`
	ReplyTo  string    `form:"reply_to"`
	SendOn   time.Time `form:"send_on"`
}

// Articles holds the button callbacks of the articles admin.
type Articles struct {
	store      *Store
	newsletter forms.Definition
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewArticles(store *Store, logger logrus.FieldLogger) (*Articles, error) {
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	a := &Articles{store: store, log: logger, now: time.Now}

	def, err := forms.FromOpenAPI(context.Background(), openAPISpec, NewsletterOperation)
	if err != nil {
		return nil, fmt.Errorf("demo: newsletter form: %w", err)
	}
	a.newsletter = def.WithClean(a.checkSendOn)
	return a, nil
}

// Buttons returns the toolbar of the articles admin.
func (a *Articles) Buttons(fns ...button.OptionFn) ([]*button.Button, error) {
	importButton, err := button.NewForm("Import articles", ImportForm, a.ImportArticles, fns...)
	if err != nil {
		return nil, err
	}
	uploadButton, err := button.NewForm("Upload CSV", UploadForm, a.UploadCSV, fns...)
	if err != nil {
		return nil, err
	}
	newsletterButton, err := button.NewForm("Send newsletter", a.newsletter, a.SendNewsletter, fns...)
	if err != nil {
		return nil, err
	}
	publishButton, err := button.New("Publish all", a.PublishAll, fns...)
	if err != nil {
		return nil, err
	}
	return []*button.Button{importButton, uploadButton, newsletterButton, publishButton}, nil
}

// Form returns the form definition of the named button.
func (a *Articles) Form(name string) (forms.Definition, bool) {
	switch name {
	case "import_articles":
		return ImportForm, true
	case "upload_csv":
		return UploadForm, true
	case "send_newsletter":
		return a.newsletter, true
	default:
		return forms.Definition{}, false
	}
}

func (a *Articles) ImportArticles(_ http.ResponseWriter, _ *http.Request, form *forms.Form) error {
	var in importInput
	if err := forms.Decode(form, &in); err != nil {
		return err
	}
	host := in.Source
	if u, err := url.Parse(in.Source); err == nil && u.Host != "" {
		host = u.Host
	}
	for i := 1; i <= in.Count; i++ {
		a.store.Add(Article{
			Title:  fmt.Sprintf("%s #%d", host, i),
			Source: in.Source,
			Status: in.Status,
			Tags:   in.Tags,
		})
	}
	a.log.WithFields(logrus.Fields{"source": in.Source, "count": in.Count}).Info("demo: articles imported")
	return nil
}

func (a *Articles) UploadCSV(_ http.ResponseWriter, _ *http.Request, form *forms.Form) error {
	files := form.Files("file")
	if len(files) == 0 {
		return forms.FieldError("file", "This field is required.")
	}
	f, err := files[0].Open()
	if err != nil {
		return fmt.Errorf("demo: open upload: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	added := 0
	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return forms.FieldError("file", "Could not read the file: "+err.Error())
		}
		if len(record) == 0 {
			continue
		}
		title := strings.TrimSpace(record[0])
		if title == "" || (line == 0 && strings.EqualFold(title, "title")) {
			continue
		}
		a.store.Add(Article{Title: title, Source: files[0].Filename})
		added++
	}
	if added == 0 {
		return forms.FieldError("file", "The file has no titles.")
	}
	a.log.WithFields(logrus.Fields{"file": files[0].Filename, "count": added}).Info("demo: articles uploaded")
	return nil
}

// SendNewsletter queues the selected articles, or every published article
// when nothing was selected.
func (a *Articles) SendNewsletter(_ http.ResponseWriter, r *http.Request, form *forms.Form) error {
	var in newsletterInput
	if err := forms.Decode(form, &in); err != nil {
		return err
	}

	var ids []int
	for _, raw := range button.SelectedIDs(r) {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return forms.FormError(fmt.Sprintf("Unknown article %q.", raw))
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		for _, article := range a.store.Articles() {
			if article.Status == StatusPublished {
				ids = append(ids, article.ID)
			}
		}
	}
	if len(ids) == 0 {
		return forms.FormError("Select articles to send, or publish some first.")
	}

	a.store.Queue(Newsletter{
		Subject:  in.Subject,
		Audience: in.Audience,
		ReplyTo:  in.ReplyTo,
		SendOn:   in.SendOn,
		Articles: ids,
	})
	a.log.WithFields(logrus.Fields{"subject": in.Subject, "articles": len(ids)}).Info("demo: newsletter queued")
	return nil
}

func (a *Articles) PublishAll(_ http.ResponseWriter, _ *http.Request) error {
	n := a.store.PublishAll()
	a.log.WithField("count", n).Info("demo: articles published")
	return nil
}

func (a *Articles) checkSendOn(cleaned map[string]any) error {
	sendOn, ok := cleaned["send_on"].(time.Time)
	if !ok {
		return nil
	}
	now := a.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if sendOn.Before(today) {
		return forms.FieldError("send_on", "The date cannot be in the past.")
	}
	return nil
}

func (a *Articles) changeListContext(*http.Request) (map[string]any, error) {
	columns, rows := a.store.Rows()
	return map[string]any{
		"columns":      columns,
		"results":      rows,
		"result_count": len(rows),
	}, nil
}
