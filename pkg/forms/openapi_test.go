package forms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbutton/pkg/forms"
)

const newsletterSpec = `
openapi: 3.0.3
info:
  title: Newsletter
  version: 1.0.0
paths:
  /newsletters:
    post:
      operationId: sendNewsletter
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                ignored:
                  type: string
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [subject, audience]
              properties:
                subject:
                  type: string
                  title: Subject line
                  maxLength: 120
                  x-order: 1
                audience:
                  type: string
                  enum: [all, staff]
                  default: staff
                  x-order: 2
                reply_to:
                  type: string
                  format: email
                  description: Replies go <b>here</b>.
                batch_size:
                  type: integer
                  minimum: 1
                  maximum: 500
                channels:
                  type: array
                  items:
                    type: string
                    enum: [email, sms]
                urgent:
                  type: boolean
      responses:
        "204":
          description: sent
`

func TestFromOpenAPI_BuildsOrderedFields(t *testing.T) {
	def, err := forms.FromOpenAPI(context.Background(), []byte(newsletterSpec), "sendNewsletter")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	fields := def.Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	wantNames := []string{"subject", "audience", "batch_size", "channels", "reply_to", "urgent"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	subject, _ := def.Field("subject")
	if subject.Label != "Subject line" || !subject.Required || subject.MaxLength != 120 || subject.Type != forms.TypeText {
		t.Fatalf("unexpected subject field: %#v", subject)
	}
	audience, _ := def.Field("audience")
	if audience.Type != forms.TypeChoice || audience.Initial != "staff" || len(audience.Choices) != 2 {
		t.Fatalf("unexpected audience field: %#v", audience)
	}
	replyTo, _ := def.Field("reply_to")
	if replyTo.Type != forms.TypeEmail || replyTo.HelpText != "Replies go <b>here</b>." {
		t.Fatalf("unexpected reply_to field: %#v", replyTo)
	}
	batch, _ := def.Field("batch_size")
	if batch.Type != forms.TypeInteger || batch.Min == nil || *batch.Min != 1 || batch.Max == nil || *batch.Max != 500 {
		t.Fatalf("unexpected batch_size field: %#v", batch)
	}
	channels, _ := def.Field("channels")
	if channels.Type != forms.TypeMultipleChoice || len(channels.Choices) != 2 {
		t.Fatalf("unexpected channels field: %#v", channels)
	}
	urgent, _ := def.Field("urgent")
	if urgent.Type != forms.TypeBoolean {
		t.Fatalf("unexpected urgent field: %#v", urgent)
	}
}

func TestFromOpenAPI_UnknownOperation(t *testing.T) {
	_, err := forms.FromOpenAPI(context.Background(), []byte(newsletterSpec), "missing")
	if !errors.Is(err, forms.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}
