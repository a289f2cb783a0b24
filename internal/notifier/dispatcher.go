package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"TrendSniper/internal/model"
)

// Channel delivers trade ideas to one destination.
type Channel interface {
	DeliverIdeas(ctx context.Context, ideas []model.TradeIdea) error
	Name() string
}

// Dispatcher fans ideas out to every channel. A failing channel does not stop
// delivery to the others.
type Dispatcher struct {
	channels []Channel
	log      zerolog.Logger
}

func NewDispatcher(log zerolog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		log:      log.With().Str("component", "dispatcher").Logger(),
	}
}

// Channels returns the configured channel names.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for _, c := range d.channels {
		names = append(names, c.Name())
	}
	return names
}

func (d *Dispatcher) DeliverIdeas(ctx context.Context, ideas []model.TradeIdea) error {
	if len(ideas) == 0 {
		return nil
	}
	var errs []error
	for _, c := range d.channels {
		if err := c.DeliverIdeas(ctx, ideas); err != nil {
			d.log.Error().Err(err).Str("channel", c.Name()).Int("ideas", len(ideas)).Msg("delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		d.log.Debug().Str("channel", c.Name()).Int("ideas", len(ideas)).Msg("ideas delivered")
	}
	return errors.Join(errs...)
}
