package main

import "fmt"

// suiteBuilder wraps the command builders so the catalog below can
// stay a declarative table: the first builder error is kept and
// surfaces from DefaultSuites, before any command runs.
type suiteBuilder struct {
	config     *Config
	err        error
	attributed bool
}

func (b *suiteBuilder) record(label string, command string, err error, enabled bool) Case {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("case %v: %w", label, err)
	}
	return Case{Label: label, Command: command, Enabled: enabled}
}

// suite attaches the suite name to a pending case error: the case
// arguments are evaluated before this call, so an unattributed error
// at this point belongs to this suite.
func (b *suiteBuilder) suite(name string, placement Placement, cases ...Case) Suite {
	if b.err != nil && !b.attributed {
		b.err = fmt.Errorf("suite %v: %w", name, b.err)
		b.attributed = true
	}
	return Suite{Name: name, Placement: placement, Cases: cases}
}

func (b *suiteBuilder) impala(query string) Case {
	command, err := b.config.ImpalaShellCmd(query)
	return b.record("impala", command, err, true)
}

func (b *suiteBuilder) impalaSingleThread(query string) Case {
	command, err := b.config.ImpalaSingleThreadCmd(query)
	return b.record("impala-single-thread", command, err, true)
}

func (b *suiteBuilder) impalaOnRecordService(query string) Case {
	command, err := b.config.ImpalaOnRecordServiceCmd(query)
	return b.record("impala-rs", command, err, true)
}

func (b *suiteBuilder) nativeClient(query string) Case {
	command, err := b.config.NativeClientCmd(query)
	return b.record("native-client", command, err, true)
}

func (b *suiteBuilder) javaClient(query string) Case {
	command, err := b.config.JavaClientCmd(query)
	return b.record("java-client", command, err, true)
}

func (b *suiteBuilder) sparkQuery1(query string) Case {
	command, err := b.config.SparkQuery1Cmd(query)
	return b.record("spark-rs", command, err, true)
}

func (b *suiteBuilder) sparkQuery2(query string) Case {
	command, err := b.config.SparkQuery2Cmd(query)
	return b.record("spark-rs", command, err, true)
}

// hive-rs cases are kept disabled until the hive serde tables are
// loaded alongside the impala ones.
func (b *suiteBuilder) hiveOnRecordServiceDisabled(query string, tblName string, fetchSize int) Case {
	return b.record("hive-rs", HiveOnRecordServiceCmd(query, tblName, fetchSize), nil, false)
}

// DefaultSuites is the benchmark catalog. Suites and cases execute and
// report in declaration order.
func DefaultSuites(config *Config) ([]Suite, error) {
	b := &suiteBuilder{config: config}
	suites := []Suite{
		b.suite("Query1_Text_6GB", PlacementLocal,
			b.impala("select sum(l_partkey) from tpch6gb.lineitem"),
			b.impalaSingleThread("select sum(l_partkey) from tpch6gb.lineitem"),
			b.impalaOnRecordService("select sum(l_partkey) from tpch6gb.lineitem"),
			b.nativeClient("select l_partkey from tpch6gb.lineitem"),
			b.javaClient("select l_partkey from tpch6gb.lineitem"),
			b.sparkQuery1("select l_partkey from tpch6gb.lineitem"),
			b.hiveOnRecordServiceDisabled(
				"select sum(l_partkey) from rs.lineitem_hive_serde",
				"tpch6gb.lineitem", 50000),
		),
		b.suite("Query1_Parquet_6GB", PlacementLocal,
			b.impala("select sum(l_partkey) from tpch6gb_parquet.lineitem"),
			b.impalaSingleThread("select sum(l_partkey) from tpch6gb_parquet.lineitem"),
			b.impalaOnRecordService("select sum(l_partkey) from tpch6gb_parquet.lineitem"),
			b.nativeClient("select l_partkey from tpch6gb_parquet.lineitem"),
			b.javaClient("select l_partkey from tpch6gb_parquet.lineitem"),
			b.sparkQuery1("select l_partkey from tpch6gb_parquet.lineitem"),
			b.hiveOnRecordServiceDisabled(
				"select sum(l_partkey) from rs.lineitem_hive_serde",
				"tpch6gb_parquet.lineitem", 50000),
		),
		b.suite("Query1_Avro_6GB", PlacementLocal,
			b.impala("select sum(l_partkey) from tpch6gb_avro_snap.lineitem"),
			b.impalaSingleThread("select sum(l_partkey) from tpch6gb_avro_snap.lineitem"),
			b.impalaOnRecordService("select sum(l_partkey) from tpch6gb_avro_snap.lineitem"),
			b.nativeClient("select l_partkey from tpch6gb_avro_snap.lineitem"),
			b.javaClient("select l_partkey from tpch6gb_avro_snap.lineitem"),
			b.sparkQuery1("select l_partkey from tpch6gb_avro_snap.lineitem"),
			b.hiveOnRecordServiceDisabled(
				"select sum(l_partkey) from rs.lineitem_hive_serde",
				"tpch6gb_avro_snap.lineitem", 50000),
		),
		b.suite("Query2_Parquet_6GB", PlacementLocal,
			b.impala("select sum(l_partkey) from tpch6gb_parquet.lineitem group by l_returnflag"),
			b.impalaSingleThread("select sum(l_partkey) from tpch6gb_parquet.lineitem group by l_returnflag"),
			b.impalaOnRecordService("select sum(l_partkey) from tpch6gb_parquet.lineitem group by l_returnflag"),
			b.nativeClient("select l_partkey, l_returnflag from tpch6gb_parquet.lineitem"),
			b.javaClient("select l_partkey, l_returnflag from tpch6gb_parquet.lineitem"),
			b.sparkQuery2("select l_partkey, l_returnflag from tpch6gb_parquet.lineitem"),
		),
		b.suite("Query2_Avro_6GB", PlacementLocal,
			b.impala("select sum(l_partkey) from tpch6gb_avro_snap.lineitem group by l_returnflag"),
			b.impalaSingleThread("select sum(l_partkey) from tpch6gb_avro_snap.lineitem group by l_returnflag"),
			b.impalaOnRecordService("select sum(l_partkey) from tpch6gb_avro_snap.lineitem group by l_returnflag"),
			b.nativeClient("select l_partkey, l_returnflag from tpch6gb_avro_snap.lineitem"),
			b.javaClient("select l_partkey, l_returnflag from tpch6gb_avro_snap.lineitem"),
			b.sparkQuery2("select l_partkey, l_returnflag from tpch6gb_avro_snap.lineitem"),
		),
		b.suite("Query1_Parquet_500GB", PlacementCluster,
			b.impala("select count(ss_item_sk) from tpcds500gb_parquet.store_sales"),
			b.impalaOnRecordService("select count(ss_item_sk) from tpcds500gb_parquet.store_sales"),
		),
	}
	if b.err != nil {
		return nil, b.err
	}
	return suites, nil
}
