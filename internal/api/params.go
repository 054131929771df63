package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gogpu/imgkit"
)

// params reads typed query parameters, keeping the first error.
type params struct {
	values url.Values
	err    error
}

func newParams(v url.Values) *params {
	return &params{values: v}
}

func (p *params) fail(name, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
}

func (p *params) int(name string) *int {
	v := p.values.Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &n
}

func (p *params) float(name string) *float64 {
	v := p.values.Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &f
}

func (p *params) bool(name string) *bool {
	v := p.values.Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &b
}

func (p *params) format(name string) *imgkit.Format {
	v := p.values.Get(name)
	if v == "" {
		return nil
	}
	f, err := imgkit.ParseFormat(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &f
}

func (p *params) fit(name string) *imgkit.Fit {
	v := p.values.Get(name)
	if v == "" {
		return nil
	}
	f, ok := imgkit.ParseFit(v)
	if !ok {
		p.fail(name, v, fmt.Errorf("want none or stretch"))
		return nil
	}
	return &f
}

func (p *params) require(name string) {
	if p.values.Get(name) == "" && p.err == nil {
		p.err = fmt.Errorf("missing %s", name)
	}
}
