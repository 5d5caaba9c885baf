package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one evaluated test set.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one classified item.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure represents a misclassification.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// SuiteName is the testsuite name used for evaluated test sets.
const SuiteName = "toolclf"

// ConvertToJUnit converts an Evaluation to JUnit XML format. Each item is a
// testcase, misclassified items are failures.
func ConvertToJUnit(ev *classifier.Evaluation, r *Report) *JUnitTestSuites {
	failures := ev.Total - ev.Correct

	suite := JUnitTestSuite{
		Name:     SuiteName,
		Tests:    ev.Total,
		Failures: failures,
		Properties: []JUnitProperty{
			{Name: "accuracy", Value: fmt.Sprintf("%.2f", ev.Accuracy)},
		},
	}
	if r != nil {
		suite.Timestamp = r.Timestamp.Format(time.RFC3339)
		suite.Properties = append(suite.Properties,
			JUnitProperty{Name: "strategy", Value: r.Model.Strategy},
			JUnitProperty{Name: "learning_rate", Value: fmt.Sprintf("%g", r.Model.LearningRate)},
			JUnitProperty{Name: "epochs_run", Value: fmt.Sprintf("%d", r.Model.EpochsRun)},
			JUnitProperty{Name: "converged", Value: fmt.Sprintf("%t", r.Model.Converged)},
		)
	}

	for _, it := range ev.Items {
		suite.TestCases = append(suite.TestCases, convertItem(it))
	}

	return &JUnitTestSuites{
		Tests:      ev.Total,
		Failures:   failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertItem(it classifier.ItemResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      it.Name,
		Classname: SuiteName + "." + labelClass(it.Actual),
	}
	if !it.Correct {
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: predicted %s, expected %s",
				it.Name, classifier.Verdict(it.Predicted), classifier.Verdict(it.Actual)),
			Type: "Misclassification",
			Body: fmt.Sprintf("function: %s\n", it.Function),
		}
	}
	return tc
}

func labelClass(label int) string {
	if label == models.LabelTool {
		return "tool"
	}
	return "not_tool"
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(ev *classifier.Evaluation, r *Report, path string) error {
	suites := ConvertToJUnit(ev, r)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
