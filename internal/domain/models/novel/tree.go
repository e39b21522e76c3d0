package novel

// VolumeNode is a volume with its chapters in sort order.
type VolumeNode struct {
	Volume   Volume    `json:"volume"`
	Chapters []Chapter `json:"chapters"`
}

// ManuscriptTree is the full structure of a manuscript: direct ("no-volume")
// chapters first, then volumes with their chapters, every list ordered by
// sort key ascending.
type ManuscriptTree struct {
	Manuscript     Manuscript   `json:"manuscript"`
	DirectChapters []Chapter    `json:"direct_chapters"`
	Volumes        []VolumeNode `json:"volumes"`
}

// AllChapters returns every chapter reachable from the manuscript, direct
// chapters first, then volume chapters in volume order.
func (t *ManuscriptTree) AllChapters() []Chapter {
	chapters := make([]Chapter, 0, len(t.DirectChapters))
	chapters = append(chapters, t.DirectChapters...)
	for _, vn := range t.Volumes {
		chapters = append(chapters, vn.Chapters...)
	}
	return chapters
}

// ChapterCount returns the number of chapters reachable from the manuscript.
func (t *ManuscriptTree) ChapterCount() int {
	n := len(t.DirectChapters)
	for _, vn := range t.Volumes {
		n += len(vn.Chapters)
	}
	return n
}
