package source

// Pages is an in-memory Document; element i holds the lines of page i+1.
type Pages [][]string

// PageCount returns the number of pages.
func (p Pages) PageCount() (int, error) {
	return len(p), nil
}

// Lines returns a copy of the lines of a 1-based page.
func (p Pages) Lines(page int) ([]string, error) {
	if err := CheckPage(page, len(p)); err != nil {
		return nil, err
	}
	return append([]string(nil), p[page-1]...), nil
}

// Close does nothing.
func (p Pages) Close() error {
	return nil
}
