package domain

import "strings"

// StatsPluginFileName is the pytest plugin written into the mutants tree.
// It is loaded with `-p` so an existing project conftest keeps working.
const StatsPluginFileName = "pymut_stats_plugin.py"

// StatsFileName is the stats snapshot the plugin writes, relative to the
// mutants tree.
const StatsFileName = "pymut-stats.json"

// MangledNameFromKey strips the mutant suffix from a full mutant key:
// "pkg.mod.x_foo__mutmut_3" becomes "pkg.mod.x_foo". This matches the
// names the trampolines record during a stats run.
func MangledNameFromKey(key string) string {
	mangled, _, _ := strings.Cut(key, "__mutmut_")
	return mangled
}

// statsPluginText collects per-test durations and the mangled functions
// each test executes. The trampolines push hits into builtins during a
// stats run; the plugin drains them after every test and dumps the
// snapshot at session end.
const statsPluginText = `import builtins
import json
import os
from collections import defaultdict

_duration_by_test = defaultdict(float)
_tests_by_mangled_function_name = defaultdict(set)


def _is_stats_run():
    return os.environ.get('MUTANT_UNDER_TEST', '') == 'stats'


def _normalized_nodeid(nodeid):
    prefix = 'mutants/'
    if nodeid.startswith(prefix):
        return nodeid[len(prefix):]
    return nodeid


def pytest_runtest_logstart(nodeid, location):
    if _is_stats_run():
        _duration_by_test[nodeid] = 0


def pytest_runtest_teardown(item, nextitem):
    if not _is_stats_run():
        return
    hits = getattr(builtins, '_mutmut_hits', None)
    if not hits:
        return
    for function in hits:
        _tests_by_mangled_function_name[function].add(_normalized_nodeid(item.nodeid))
    hits.clear()


def pytest_runtest_makereport(item, call):
    if _is_stats_run():
        _duration_by_test[item.nodeid] += call.duration


def pytest_sessionfinish(session, exitstatus):
    if not _is_stats_run():
        return
    with open('pymut-stats.json', 'w', encoding='utf-8') as f:
        json.dump(
            dict(
                tests_by_mangled_function_name={
                    k: sorted(v) for k, v in _tests_by_mangled_function_name.items()
                },
                duration_by_test=dict(_duration_by_test),
                stats_time=sum(_duration_by_test.values()),
            ),
            f,
            indent=4,
        )
`
