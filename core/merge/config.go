package merge

import "strings"

// Config holds the server-side merge defaults, loaded from the
// environment. They seed the Options a request starts from; uploads
// may override any of them.
type Config struct {
	// KeyColumns is a comma-separated list of default key columns.
	KeyColumns string `mapstructure:"key_columns" default:""`
	// Policy is the default conflict policy.
	Policy string `mapstructure:"policy" default:"first_wins"`
	// Order is the default source ordering.
	Order string `mapstructure:"order" default:"as_supplied"`
	// HeaderRow treats the first row as headers by default.
	HeaderRow bool `mapstructure:"header_row" default:"true"`
	// SourceColumn adds the origin column by default.
	SourceColumn bool `mapstructure:"source_column" default:"false"`
}

// Options converts the configured defaults into engine options.
func (c Config) Options() (Options, error) {
	o := DefaultOptions()
	o.HeaderRow = c.HeaderRow
	o.SourceColumn = c.SourceColumn

	if c.Policy != "" {
		p, err := ParsePolicy(c.Policy)
		if err != nil {
			return Options{}, err
		}
		o.Policy = p
	}
	if c.Order != "" {
		ord, err := ParseSourceOrder(c.Order)
		if err != nil {
			return Options{}, err
		}
		o.Order = ord
	}
	for _, kc := range strings.Split(c.KeyColumns, ",") {
		if kc = strings.TrimSpace(kc); kc != "" {
			o.KeyColumns = append(o.KeyColumns, kc)
		}
	}
	return o, nil
}
