package core

// DefaultLimit is the page size used by the API when none is given.
const DefaultLimit = 20

// Page selects a window of a list: `skip` records are ignored, at most `limit` are returned.
type Page struct {
	Skip  int
	Limit int
}

// Clean returns a usable Page, falling back to defaultLimit (or DefaultLimit).
func (p Page) Clean(defaultLimit ...int) Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
		if len(defaultLimit) > 0 && defaultLimit[0] > 0 {
			p.Limit = defaultLimit[0]
		}
	}
	return p
}

// Window returns the [start, end) bounds of the page over n records.
func (p Page) Window(n int) (int, int) {
	p = p.Clean()
	if p.Skip >= n {
		return n, n
	}
	end := p.Skip + p.Limit
	if end > n {
		end = n
	}
	return p.Skip, end
}
