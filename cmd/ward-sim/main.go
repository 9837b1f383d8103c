// ward-sim drives a running server with synthetic ward traffic: it
// fences a batch of simulated devices, then walks each one around so
// some wander out and trigger breach alerts.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxDevices int = 200
var httpHostPort string = "127.0.0.1:1080"
var reportsPerDevice int = 10

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// fences are squares centered on this point
var centerLat float64 = 31.2304
var centerLon float64 = 121.4737
var fenceHalfSize float64 = 0.01

func main() {
	deviceIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			createFence(deviceIDs[i], int64(i+1))
			fmt.Printf("\rcreated fence for device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated fences for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			wander(deviceIDs[i], int64(i+1))
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	totalReports := maxDevices * reportsPerDevice
	fmt.Printf(
		"\n\rreported %v locations: used time=%v seconds, throughput=%v action/second\n",
		totalReports, usedTime.Seconds(), float64(totalReports)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func createFence(deviceID string, guardianID int64) {
	payload := map[string]any{
		"deviceId": deviceID,
		"name":     "sim-" + deviceID[:8],
		"vertices": [][]float64{
			{centerLon - fenceHalfSize, centerLat - fenceHalfSize},
			{centerLon + fenceHalfSize, centerLat - fenceHalfSize},
			{centerLon + fenceHalfSize, centerLat + fenceHalfSize},
			{centerLon - fenceHalfSize, centerLat + fenceHalfSize},
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST",
		fmt.Sprintf("http://%s/fences", httpHostPort), bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guardian-Id", fmt.Sprintf("%d", guardianID))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("fence creation failed: %v", resp.Status))
	}
}

// wander posts a random walk for the device. The step size lets a
// fraction of devices drift outside their fence and trip alerts.
func wander(deviceID string, guardianID int64) {
	lat := centerLat
	lon := centerLon

	for i := 0; i < reportsPerDevice; i++ {
		lat += rndFloat64(-0.004, 0.004, 6)
		lon += rndFloat64(-0.004, 0.004, 6)

		payload := map[string]any{
			"latitude":   lat,
			"longitude":  lon,
			"accuracy":   rndFloat64(1.0, 20.0, 2),
			"guardianId": guardianID,
		}

		jsonData, _ := json.Marshal(payload)
		resp, err := http.Post(
			fmt.Sprintf("http://%s/devices/%s/location", httpHostPort, deviceID),
			"application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
		}

		fmt.Printf("\rreported location %v for device %v", i, deviceID)
		time.Sleep(time.Duration(100+rnd.Int31n(500)) * time.Millisecond)
	}
}
