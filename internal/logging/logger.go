// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	ArrivalIDField   = "arrivalId"
	ParticipantField = "participant"
)

type loggerKey int

const (
	ctxLoggerKey loggerKey = iota
)

// Configure sets level, formatter and output of the standard logger.
// Unparseable levels fall back to info.
func Configure(levelStr string, w io.Writer) {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.0000Z07:00",
	})
	logrus.SetOutput(w)

	if err != nil {
		logrus.WithError(err).Warnf("Invalid log level %q, using %s", levelStr, level)
	}
}

// WithFields returns a ctx whose logger carries fields in addition to the
// ones already attached.
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, FromContext(ctx).WithFields(fields))
}

func WithArrivalID(ctx context.Context, arrivalID string) context.Context {
	return WithFields(ctx, logrus.Fields{ArrivalIDField: arrivalID})
}

// FromContext returns the logger attached to ctx, or the standard logger.
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxLoggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
