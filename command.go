package main

import (
	"fmt"
	"strings"
)

// Command builders. Each one turns a raw SQL string into a complete
// shell invocation for one client technology. The builders only format
// strings; running the command is the driver's job.

const (
	sampleClientClass = "com.cloudera.recordservice.sample.SampleClientLib"
	sparkQuery1Class  = "com.cloudera.recordservice.benchmark.Query1"
	sparkQuery2Class  = "com.cloudera.recordservice.benchmark.Query2"
	hiveInputFormat   = "com.cloudera.recordservice.hive.RecordServiceHiveInputFormat"
)

func (c *Config) ImpalaShellCmd(query string) (string, error) {
	home, err := c.impalaHome()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%v/bin/impala-shell.sh -i LOCALHOST -B -q "%v"`, home, query), nil
}

func (c *Config) ImpalaSingleThreadCmd(query string) (string, error) {
	return c.ImpalaShellCmd("set num_scanner_threads=1;" + query)
}

func (c *Config) ImpalaOnRecordServiceCmd(query string) (string, error) {
	return c.ImpalaShellCmd("set use_record_service=true;" + query)
}

func (c *Config) NativeClientCmd(query string) (string, error) {
	home, err := c.recordServiceHome()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%v/cpp/build/release/recordservice/record-service-client "%v"`, home, query), nil
}

func (c *Config) JavaClientCmd(query string) (string, error) {
	home, err := c.recordServiceHome()
	if err != nil {
		return "", err
	}
	jar := fmt.Sprintf("%v/java/sample/target/recordservice-sample-0.1.jar", home)
	return fmt.Sprintf(`java -classpath %v %v "%v"`, jar, sampleClientClass, query), nil
}

func (c *Config) SparkCmd(class string, query string) (string, error) {
	home, err := c.recordServiceHome()
	if err != nil {
		return "", err
	}
	jar := fmt.Sprintf("%v/java/spark-benchmark/target/recordservice-spark-benchmark-0.1.jar", home)
	return fmt.Sprintf(`java -classpath %v %v "%v"`, jar, class, query), nil
}

func (c *Config) SparkQuery1Cmd(query string) (string, error) {
	return c.SparkCmd(sparkQuery1Class, query)
}

func (c *Config) SparkQuery2Cmd(query string) (string, error) {
	return c.SparkCmd(sparkQuery2Class, query)
}

func HiveCmd(query string) string {
	return fmt.Sprintf(`hive -e "%v"`, query)
}

// HiveOnRecordServiceCmd routes a hive query through RecordService by
// injecting the input-format override, target table and fetch size as
// session settings ahead of the query itself.
func HiveOnRecordServiceCmd(query string, tblName string, fetchSize int) string {
	settings := strings.Join([]string{
		fmt.Sprintf("set hive.input.format=%v;", hiveInputFormat),
		fmt.Sprintf("set recordservice.table.name=%v;", tblName),
		fmt.Sprintf("set recordservice.fetch.size=%v;", fetchSize),
		query,
	}, "\n")
	return HiveCmd(settings)
}
