// SPDX-License-Identifier: MIT

package uncertainty

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/uncertainty/matrix"
)

// Option configures table loading.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	matrixOpts []matrix.Option
}

// WithLogger routes load diagnostics to l. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAllowNaN accepts NaN and ±Inf cells in the value table. By default a
// non-finite value fails the decode with ErrParse.
func WithAllowNaN() Option {
	return func(o *options) {
		o.matrixOpts = append(o.matrixOpts, matrix.WithAllowNaNInf())
	}
}

func gatherOptions(opts ...Option) options {
	o := options{logger: zap.NewNop()}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
