package service

import (
	"math/rand"
	"time"
)

// SystemClock 本机时钟。
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SystemRand 排期选时用的全局随机源。
type SystemRand struct{}

func (SystemRand) Intn(n int) int { return rand.Intn(n) }
