package storage

func NewBucketWithClient(client s3API, name string) *Bucket {
	return &Bucket{client: client, name: name}
}
