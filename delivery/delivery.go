// Package delivery connects the parsing core to its collaborators: the
// object store holding raw inbound mail and the outbound mail service. The
// core itself performs no I/O; collaborator lifecycles belong to the
// caller.
package delivery

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hechven/meeting-mailer/compose"
	"github.com/hechven/meeting-mailer/parsers"
)

// ObjectStore provides raw email documents by key and removes them once
// processed.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// OutboundMail is one confirmation email ready for delivery.
type OutboundMail struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers outbound confirmation emails.
type Mailer interface {
	Send(ctx context.Context, mail OutboundMail) error
}

// Processor runs the full flow for one stored document: fetch, parse,
// compose, send, delete.
type Processor struct {
	store    ObjectStore
	mailer   Mailer
	parser   *parsers.Parser
	composer *compose.Composer
	source   string
	log      zerolog.Logger
}

// NewProcessor wires a processor with its collaborators. The source address
// is the sender of outbound confirmations.
func NewProcessor(store ObjectStore, mailer Mailer, parser *parsers.Parser, composer *compose.Composer, source string, log zerolog.Logger) *Processor {
	return &Processor{
		store:    store,
		mailer:   mailer,
		parser:   parser,
		composer: composer,
		source:   source,
		log:      log,
	}
}

// Process handles one stored raw email. Parse and delivery failures abort
// and propagate; a failed cleanup after successful delivery is logged and
// tolerated.
func (p *Processor) Process(ctx context.Context, key string) error {
	raw, err := p.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", key, err)
	}

	record, err := p.parser.Parse(string(raw))
	if err != nil {
		return err
	}

	notification, err := p.composer.Compose(record)
	if err != nil {
		return err
	}

	if err := p.mailer.Send(ctx, OutboundMail{
		From:     p.source,
		To:       notification.To,
		Subject:  notification.Subject,
		TextBody: notification.TextBody,
		HTMLBody: notification.HTMLBody,
	}); err != nil {
		return err
	}
	p.log.Info().Str("to", notification.To).Msg("confirmation email sent")

	if err := p.store.Delete(ctx, key); err != nil {
		// Cleanup failure must not undo an already-delivered confirmation.
		p.log.Warn().Err(err).Str("key", key).Msg("failed to delete processed email")
	}

	return nil
}
