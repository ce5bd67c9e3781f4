package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		ImpalaHome:        "/opt/impala",
		RecordServiceHome: "/opt/recordservice",
	}
}

func TestImpalaShellCmd(t *testing.T) {
	cmd, err := testConfig().ImpalaShellCmd("select sum(l_partkey) from tpch6gb.lineitem")
	require.Nil(t, err)
	require.True(t, strings.HasPrefix(cmd, "/opt/impala/bin/impala-shell.sh"))
	require.Contains(t, cmd, `"select sum(l_partkey) from tpch6gb.lineitem"`)
	require.Equal(t, 1, strings.Count(cmd, " -B "))
	require.Equal(t, 1, strings.Count(cmd, " -q "))
}

func TestImpalaShellCmdMissingHome(t *testing.T) {
	config := &Config{}
	_, err := config.ImpalaShellCmd("select 1")
	require.NotNil(t, err)
	require.ErrorContains(t, err, "IMPALA_HOME")
	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "IMPALA_HOME", missing.Variable)
}

func TestImpalaSingleThreadCmd(t *testing.T) {
	config := testConfig()
	cmd, err := config.ImpalaSingleThreadCmd("select 1")
	require.Nil(t, err)
	expected, err := config.ImpalaShellCmd("set num_scanner_threads=1;select 1")
	require.Nil(t, err)
	require.Equal(t, expected, cmd)
}

func TestImpalaOnRecordServiceCmd(t *testing.T) {
	config := testConfig()
	cmd, err := config.ImpalaOnRecordServiceCmd("select 1")
	require.Nil(t, err)
	expected, err := config.ImpalaShellCmd("set use_record_service=true;select 1")
	require.Nil(t, err)
	require.Equal(t, expected, cmd)
}

func TestNativeClientCmd(t *testing.T) {
	cmd, err := testConfig().NativeClientCmd("select l_partkey from tpch6gb.lineitem")
	require.Nil(t, err)
	require.True(t, strings.HasPrefix(cmd, "/opt/recordservice/cpp/build/release/recordservice/record-service-client"))
	require.True(t, strings.HasSuffix(cmd, `"select l_partkey from tpch6gb.lineitem"`))
}

func TestNativeClientCmdMissingHome(t *testing.T) {
	config := &Config{ImpalaHome: "/opt/impala"}
	_, err := config.NativeClientCmd("select 1")
	require.ErrorContains(t, err, "RECORD_SERVICE_HOME")
}

func TestJavaClientCmd(t *testing.T) {
	cmd, err := testConfig().JavaClientCmd("select 1")
	require.Nil(t, err)
	require.True(t, strings.HasPrefix(cmd, "java -classpath "))
	require.Contains(t, cmd, "/opt/recordservice/java/sample/target/recordservice-sample-0.1.jar")
	require.Contains(t, cmd, "com.cloudera.recordservice.sample.SampleClientLib")
	require.True(t, strings.HasSuffix(cmd, `"select 1"`))
}

func TestJavaClientCmdMissingHome(t *testing.T) {
	config := &Config{ImpalaHome: "/opt/impala"}
	_, err := config.JavaClientCmd("select 1")
	require.ErrorContains(t, err, "RECORD_SERVICE_HOME")
}

func TestSparkCmds(t *testing.T) {
	config := testConfig()
	q1, err := config.SparkQuery1Cmd("select 1")
	require.Nil(t, err)
	require.Contains(t, q1, "/opt/recordservice/java/spark-benchmark/target/recordservice-spark-benchmark-0.1.jar")
	require.Contains(t, q1, "com.cloudera.recordservice.benchmark.Query1")
	require.True(t, strings.HasSuffix(q1, `"select 1"`))

	q2, err := config.SparkQuery2Cmd("select 1")
	require.Nil(t, err)
	require.Contains(t, q2, "com.cloudera.recordservice.benchmark.Query2")
}

func TestHiveCmd(t *testing.T) {
	require.Equal(t, `hive -e "select 1"`, HiveCmd("select 1"))
}

func TestHiveOnRecordServiceCmd(t *testing.T) {
	cmd := HiveOnRecordServiceCmd("select 1", "t", 50000)
	require.True(t, strings.HasPrefix(cmd, `hive -e "`))
	require.True(t, strings.HasSuffix(cmd, `"`))

	ordered := []string{
		"set hive.input.format=com.cloudera.recordservice.hive.RecordServiceHiveInputFormat;",
		"set recordservice.table.name=t;",
		"set recordservice.fetch.size=50000;",
		"select 1",
	}
	position := 0
	for _, part := range ordered {
		index := strings.Index(cmd[position:], part)
		require.GreaterOrEqual(t, index, 0, "expected %v after offset %v in %v", part, position, cmd)
		position += index + len(part)
	}
}
