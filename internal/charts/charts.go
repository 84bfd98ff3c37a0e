// Package charts renders a self-contained Highcharts column chart for a
// set of scores, ready to embed in the web UI.
package charts

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/mauricejumelet/advisor-cli/internal/datastore"
)

const (
	barColor = "#00c2ff"
	bgColor  = "#0c2144"

	highchartsCDN       = "https://code.highcharts.com/highcharts.js"
	highchartsIntegrity = "sha384-GuZpdtcxzvZAKIlclU0on1Zsa1+lZeI7IuP89xDSHLVYRIlnJr2dIovnHgwlHGaw"
)

// Build returns an HTML snippet (div + script) charting the scores in
// order. An empty score set yields an empty placeholder div.
func Build(scores []datastore.Score) string {
	if len(scores) == 0 {
		return "<div style='height:200px'></div>"
	}

	labels := make([]string, len(scores))
	values := make([]int, len(scores))
	for i, s := range scores {
		labels[i] = s.Label
		values[i] = s.Value
	}

	opts := map[string]interface{}{
		"chart": map[string]interface{}{
			"type":            "column",
			"backgroundColor": bgColor,
			"style":           map[string]string{"fontFamily": "Inter, sans-serif"},
		},
		"title": map[string]interface{}{"text": nil},
		"xAxis": map[string]interface{}{
			"categories": labels,
			"lineColor":  "#ffffff66",
			"labels":     map[string]interface{}{"style": map[string]string{"color": "#ffffffaa", "fontSize": "10px"}},
		},
		"yAxis": map[string]interface{}{
			"min":           0,
			"max":           100,
			"gridLineColor": "#33475b",
			"title":         map[string]interface{}{"text": nil},
			"labels":        map[string]interface{}{"style": map[string]string{"color": "#ffffffaa", "fontSize": "10px"}},
		},
		"plotOptions": map[string]interface{}{
			"column": map[string]interface{}{
				"pointPadding": 0.1,
				"borderWidth":  0,
				"borderRadius": 3,
			},
		},
		"series": []map[string]interface{}{
			{"name": "Score", "data": values, "color": barColor},
		},
		"legend":  map[string]interface{}{"enabled": false},
		"credits": map[string]interface{}{"enabled": false},
	}

	encoded, err := json.Marshal(opts)
	if err != nil {
		return "<div style='height:200px'></div>"
	}

	divID := chartID()
	return fmt.Sprintf(
		"<div id='%s' style='width:100%%;height:220px;'></div>"+
			"<script src=\"%s\" integrity=\"%s\" crossorigin=\"anonymous\"></script>"+
			"<script>Highcharts.chart('%s', %s);</script>",
		divID, highchartsCDN, highchartsIntegrity, divID, encoded,
	)
}

func chartID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "chart-" + hex.EncodeToString(b)
}
