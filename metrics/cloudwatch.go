// file: metrics/cloudwatch.go
package metrics

import (
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"mentora-hub/logger"
)

// Namespace for all Mentora Hub metrics
const metricsNamespace = "MentoraHub"

// queued datums beyond this are dropped rather than blocking a request
const cloudWatchQueueSize = 256

// CloudWatch pushes each event as a datum from a background goroutine.
type CloudWatch struct {
	client cloudwatchiface.CloudWatchAPI
	env    string
	queue  chan *cloudwatch.MetricDatum
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewCloudWatch creates a sink using the default AWS session for region.
func NewCloudWatch(region, env string) (*CloudWatch, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return NewCloudWatchWithClient(cloudwatch.New(sess), env), nil
}

// NewCloudWatchWithClient starts the publishing goroutine for client.
func NewCloudWatchWithClient(client cloudwatchiface.CloudWatchAPI, env string) *CloudWatch {
	c := &CloudWatch{
		client: client,
		env:    env,
		queue:  make(chan *cloudwatch.MetricDatum, cloudWatchQueueSize),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Close stops accepting datums and waits for queued ones to be sent.
func (c *CloudWatch) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *CloudWatch) WebhookRequest(kind, outcome string) {
	c.enqueue("WebhookRequests", 1, cloudwatch.StandardUnitCount, "IntentKind", kind, "Outcome", outcome)
}

func (c *CloudWatch) PersistFailure(collection string) {
	c.enqueue("PersistFailures", 1, cloudwatch.StandardUnitCount, "Collection", collection)
}

func (c *CloudWatch) ModerationAction(action, outcome string) {
	c.enqueue("ModerationActions", 1, cloudwatch.StandardUnitCount, "Action", action, "Outcome", outcome)
}

func (c *CloudWatch) LiveWatchers(n int) {
	c.enqueue("LiveDashboardWatchers", float64(n), cloudwatch.StandardUnitCount)
}

// enqueue builds a datum; dims are name/value pairs added after Environment.
func (c *CloudWatch) enqueue(metricName string, value float64, unit string, dims ...string) {
	dimensions := []*cloudwatch.Dimension{{Name: aws.String("Environment"), Value: aws.String(c.env)}}
	for i := 0; i+1 < len(dims); i += 2 {
		dimensions = append(dimensions, &cloudwatch.Dimension{Name: aws.String(dims[i]), Value: aws.String(dims[i+1])})
	}
	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(metricName),
		Dimensions: dimensions,
		Timestamp:  aws.Time(time.Now()),
		Value:      aws.Float64(value),
		Unit:       aws.String(unit),
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		logger.Debug.Printf("[CloudWatch] dropped %s after close", metricName)
		return
	}
	select {
	case c.queue <- datum:
	default:
		logger.Warn.Printf("[CloudWatch] queue full, dropping %s", metricName)
	}
}

func (c *CloudWatch) run() {
	defer c.wg.Done()
	for datum := range c.queue {
		c.putMetric(datum)
	}
}

func (c *CloudWatch) putMetric(datum *cloudwatch.MetricDatum) {
	_, err := c.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{datum},
	})
	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", aws.StringValue(datum.MetricName), err)
	}
}
