// Package minio serves REFER datasets from MinIO or any other S3-compatible
// service through the MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	store := minioblob.NewStore(client, "datasets", "refer/")
//	r, err := refer.Open(ctx, store, "refcocog", "umd")
//
// Use Dial to build the client from an endpoint and static credentials.
package minio
