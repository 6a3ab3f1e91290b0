package elasticsearch

import (
	"testing"

	infraKafka "vidtube-go/internal/infra/kafka"
)

func TestEventToDoc(t *testing.T) {
	created := eventToDoc(&infraKafka.CommentEvent{
		Type:      infraKafka.CommentCreated,
		CommentID: "c1",
		VideoID:   "v1",
		OwnerID:   "u1",
		Content:   "hello",
		Timestamp: 1700000000000,
	})
	if created.CreatedAt != 1700000000000 || created.UpdatedAt != 1700000000000 {
		t.Fatalf("created doc must carry both timestamps, got %+v", created)
	}
	if created.Content != "hello" || created.VideoID != "v1" {
		t.Fatalf("unexpected doc %+v", created)
	}

	updated := eventToDoc(&infraKafka.CommentEvent{
		Type:      infraKafka.CommentUpdated,
		CommentID: "c1",
		Timestamp: 1700000005000,
	})
	if updated.CreatedAt != 0 {
		t.Fatalf("updated doc must not overwrite created_at, got %d", updated.CreatedAt)
	}
}

func TestNormalizeHosts(t *testing.T) {
	got := normalizeHosts([]string{" 127.0.0.1:9200 ", "", "https://es.internal:9200"})
	want := []string{"http://127.0.0.1:9200", "https://es.internal:9200"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("host %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
