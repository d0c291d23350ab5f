package cache

import (
	"errors"

	"github.com/gomodule/redigo/redis"
)

func Get(key string, conn redis.Conn) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

func Del(key string, conn redis.Conn) error {
	_, err := conn.Do("DEL", key)
	return err
}

// SetEx stores value under key for ttlSeconds.
func SetEx(key string, value interface{}, ttlSeconds int, conn redis.Conn) error {
	reply, err := redis.String(conn.Do("SET", key, value, "EX", ttlSeconds))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return errors.New("unexpected SET reply " + reply)
	}
	return nil
}

// SetNX stores value only when key is absent and reports whether it did.
func SetNX(key string, value interface{}, ttlSeconds int, conn redis.Conn) (bool, error) {
	_, err := redis.String(conn.Do("SET", key, value, "NX", "EX", ttlSeconds))
	if err == redis.ErrNil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
