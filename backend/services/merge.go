package services

import (
	"fmt"
	"math"

	"lms/backend/models"
)

// MergeSections combines stored progress sections with a partial client
// update. Clients only send the sections/chapters they have new information
// about, so everything absent from incoming is preserved as-is. Matching is
// by sectionId/chapterId; an incoming completed flag overwrites the stored
// one, which keeps the merge idempotent and allows un-completing a chapter.
// Sections or chapters the store has never seen are appended in the order the
// client sent them; existing order is authoritative otherwise.
func MergeSections(existing, incoming []models.SectionProgress) ([]models.SectionProgress, error) {
	if err := ValidateSections(incoming); err != nil {
		return nil, err
	}

	merged := make([]models.SectionProgress, len(existing))
	for i, section := range existing {
		chapters := make([]models.ChapterProgress, len(section.Chapters))
		copy(chapters, section.Chapters)
		merged[i] = models.SectionProgress{
			SectionID: section.SectionID,
			Chapters:  chapters,
		}
	}

	for _, in := range incoming {
		idx := -1
		for i := range merged {
			if merged[i].SectionID == in.SectionID {
				idx = i
				break
			}
		}

		if idx < 0 {
			chapters := make([]models.ChapterProgress, len(in.Chapters))
			copy(chapters, in.Chapters)
			merged = append(merged, models.SectionProgress{
				SectionID: in.SectionID,
				Chapters:  chapters,
			})
			continue
		}

		for _, ch := range in.Chapters {
			found := false
			for i := range merged[idx].Chapters {
				if merged[idx].Chapters[i].ChapterID == ch.ChapterID {
					merged[idx].Chapters[i].Completed = ch.Completed
					found = true
					break
				}
			}
			if !found {
				merged[idx].Chapters = append(merged[idx].Chapters, ch)
			}
		}
	}

	return merged, nil
}

// CalculateOverallProgress derives the aggregate completion percentage over
// every chapter in the given sections, rounded to the nearest integer. A
// progress document with no chapters yields 0.
func CalculateOverallProgress(sections []models.SectionProgress) int {
	total := 0
	completed := 0
	for _, section := range sections {
		for _, chapter := range section.Chapters {
			total++
			if chapter.Completed {
				completed++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ValidateSections rejects partial payloads with missing identifiers before
// any merge work happens, so a malformed update never produces a partial
// result.
func ValidateSections(sections []models.SectionProgress) error {
	for i, section := range sections {
		if section.SectionID == "" {
			return fmt.Errorf("%w: section at index %d is missing sectionId", ErrInvalidProgress, i)
		}
		for j, chapter := range section.Chapters {
			if chapter.ChapterID == "" {
				return fmt.Errorf("%w: chapter at index %d in section %s is missing chapterId",
					ErrInvalidProgress, j, section.SectionID)
			}
		}
	}
	return nil
}
