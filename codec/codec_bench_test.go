package codec

import (
	"fmt"
	"testing"

	"github.com/hupe1980/refer/model"
)

func benchInstances(n int) model.Instances {
	inst := model.Instances{
		Categories: []model.Category{{ID: 1, Name: "person"}, {ID: 2, Name: "dog"}},
	}
	for i := range n {
		inst.Images = append(inst.Images, model.Image{
			ID:       model.ImageID(i),
			FileName: fmt.Sprintf("COCO_train2014_%012d.jpg", i),
			Height:   480,
			Width:    640,
		})
		inst.Annotations = append(inst.Annotations, model.Annotation{
			ID:         model.AnnID(i),
			ImageID:    model.ImageID(i),
			CategoryID: model.CatID(1 + i%2),
			BBox:       model.BBox{10, 20, 30, 40},
			Area:       1200,
			Segmentation: model.Segmentation{
				Polygons: [][]float64{{10, 20, 40, 20, 40, 60, 10, 60}},
			},
		})
	}
	return inst
}

func benchmarkCodecUnmarshal(b *testing.B, c Codec, data []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for b.Loop() {
		var inst model.Instances
		if err := c.Unmarshal(data, &inst); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodec_UnmarshalInstances(b *testing.B) {
	data := MustMarshal(JSON{}, benchInstances(1000))

	b.Run("json", func(b *testing.B) { benchmarkCodecUnmarshal(b, JSON{}, data) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecUnmarshal(b, GoJSON{}, data) })
}
