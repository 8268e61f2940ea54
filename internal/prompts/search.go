package prompts

import "strings"

// SearchResult holds the matches of a SearchAll call.
type SearchResult struct {
	Prompts []Prompt `json:"prompts"`
	Folders []Folder `json:"folders"`
}

// SearchAll returns prompts whose title or content contains the query and
// folders whose name contains it, case-insensitively. This is the same
// substring match the extension UI offers; full-text indexing is out of
// scope.
func (r *Repository) SearchAll(query string) (*SearchResult, error) {
	q := strings.ToLower(query)

	ps, err := r.ListPrompts()
	if err != nil {
		return nil, err
	}
	fs, err := r.ListFolders()
	if err != nil {
		return nil, err
	}

	res := &SearchResult{}
	for _, p := range ps {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			res.Prompts = append(res.Prompts, p)
		}
	}
	for _, f := range fs {
		if strings.Contains(strings.ToLower(f.Name), q) {
			res.Folders = append(res.Folders, f)
		}
	}
	return res, nil
}
