package network

import (
	"fmt"
	"sort"

	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/go-redis/redis/v7"
)

// RedisClient keeps one hash per batch. Each field is the source
// path of an item and each value is the item's IngestRecord as JSON.
// That gives operators a record of which pids were minted for which
// files, which matters because Fedora never rolls anything back.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(address, password string, db int) *RedisClient {
	return &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     address,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *RedisClient) Ping() (string, error) {
	return c.client.Ping().Result()
}

func batchKey(batchID string) string {
	return fmt.Sprintf("batch:%s", batchID)
}

func (c *RedisClient) IngestRecordGet(batchID, source string) (*fedora.IngestRecord, error) {
	data, err := c.client.HGet(batchKey(batchID), source).Result()
	if err != nil {
		return nil, fmt.Errorf("IngestRecordGet (%s, %s): %s",
			batchID, source, err.Error())
	}
	return fedora.IngestRecordFromJSON(data)
}

func (c *RedisClient) IngestRecordSave(record *fedora.IngestRecord) error {
	jsonData, err := record.ToJSON()
	if err != nil {
		return err
	}
	_, err = c.client.HSet(batchKey(record.BatchID), record.Source, jsonData).Result()
	return err
}

// IngestRecordList returns all records in a batch, ordered by
// source path.
func (c *RedisClient) IngestRecordList(batchID string) ([]*fedora.IngestRecord, error) {
	data, err := c.client.HGetAll(batchKey(batchID)).Result()
	if err != nil {
		return nil, fmt.Errorf("IngestRecordList (%s): %s", batchID, err.Error())
	}
	records := make([]*fedora.IngestRecord, 0, len(data))
	for _, jsonData := range data {
		record, err := fedora.IngestRecordFromJSON(jsonData)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Source < records[j].Source
	})
	return records, nil
}

func (c *RedisClient) IngestRecordDelete(batchID, source string) error {
	_, err := c.client.HDel(batchKey(batchID), source).Result()
	return err
}

// BatchDelete removes all records for a batch.
func (c *RedisClient) BatchDelete(batchID string) error {
	_, err := c.client.Del(batchKey(batchID)).Result()
	return err
}
