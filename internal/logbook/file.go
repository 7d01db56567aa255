package logbook

import "github.com/gifnar/volunteerlog/internal/export"

// DirDownloader saves exports as files in Dir. LastPath is the most recent
// file written.
type DirDownloader struct {
	Dir      string
	LastPath string
}

func (d *DirDownloader) Download(filename, content string) error {
	path, err := export.WriteFile(d.Dir, filename, content)
	if err != nil {
		return err
	}
	d.LastPath = path
	return nil
}
