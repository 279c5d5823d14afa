package testutil

import "github.com/hupe1980/refer/model"

// Scenario returns a small, fully known dataset:
//
//   - 3 images, 2 categories
//   - 5 rectangular annotations; annotation 50 is not referred to
//   - 4 refs: 100, 101 and 103 in "train", 102 in "testA"
//   - 6 sentences
func Scenario() *model.RawData {
	return NewBuilder("refcoco", "unc").
		Image(1, "COCO_train2014_000000000001.jpg", 100, 120).
		Image(2, "COCO_train2014_000000000002.jpg", 80, 80).
		Image(3, "COCO_train2014_000000000003.jpg", 60, 90).
		Category(1, "person").
		Category(2, "dog").
		Ann(10, 1, 1, Rect(10, 10, 20, 30)).
		Ann(20, 1, 2, Rect(50, 40, 30, 20)).
		Ann(30, 2, 1, Rect(0, 0, 40, 40)).
		Ann(40, 3, 2, Rect(5, 5, 10, 10)).
		Ann(50, 3, 1, Rect(40, 20, 20, 20)).
		Ref(100, 10, "train", "man on the left", "guy in red shirt").
		Ref(101, 20, "train", "brown dog").
		Ref(102, 30, "testA", "woman in the middle", "lady with an umbrella").
		Ref(103, 40, "train", "small dog bottom left").
		Build()
}
