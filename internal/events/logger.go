// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/splatfolio/internal/logging"
)

// zerologAdapter implements watermill.LoggerAdapter on the application logger.
type zerologAdapter struct {
	fields watermill.LogFields
}

// NewLogger returns a watermill logger that writes through internal/logging.
func NewLogger() watermill.LoggerAdapter {
	return zerologAdapter{}
}

func (l zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.emit(logging.Error().Err(err), msg, fields)
}

func (l zerologAdapter) Info(msg string, fields watermill.LogFields) {
	l.emit(logging.Debug(), msg, fields)
}

func (l zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	l.emit(logging.Trace(), msg, fields)
}

func (l zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	l.emit(logging.Trace(), msg, fields)
}

func (l zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return zerologAdapter{fields: l.fields.Add(fields)}
}

func (l zerologAdapter) emit(event *zerolog.Event, msg string, fields watermill.LogFields) {
	event = event.Str("component", "watermill")
	for k, v := range l.fields {
		event = event.Interface(k, v)
	}
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
