// Package s3 serves REFER datasets straight from an S3 bucket.
//
// # Usage
//
//	store, err := s3.New(ctx, "datasets",
//	    s3.WithPrefix("refer/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	r, err := refer.Open(ctx, store, "refcoco", "unc")
//
// Blobs are fetched with ranged GETs; Put uses the multipart uploader so
// fixture uploads of large instance files do not need to fit one request.
package s3
