package pagination

import "fmt"

// Validate checks p against config.
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("invalid page number: page must be a positive integer")
	}
	if config.MaxPage > 0 && p.Page > config.MaxPage {
		return fmt.Errorf("invalid page number: page must be <= %d", config.MaxPage)
	}
	return nil
}
